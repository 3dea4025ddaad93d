// Package metadata holds the typed JDK metadata model (spec.md §3/§4.E):
// distributions, package coordinates, JDK metadata records, and the
// on-disk cache that backs the provider (internal/metadata/source).
package metadata

import "strings"

// Distribution is a case-insensitive vendor identifier drawn from a closed
// set of known vendors, plus an open "other" escape for anything foojay.io
// introduces before this module is updated to know its display name.
type Distribution struct {
	ID          string
	DisplayName string
	Synonyms    []string
}

// known mirrors the vendor set foojay.io serves; display names match the
// ones it returns so `cache list-distributions` never has to guess.
var known = []Distribution{
	{ID: "temurin", DisplayName: "Eclipse Temurin", Synonyms: []string{"adoptium", "adoptopenjdk"}},
	{ID: "corretto", DisplayName: "Amazon Corretto"},
	{ID: "zulu", DisplayName: "Azul Zulu"},
	{ID: "liberica", DisplayName: "BellSoft Liberica"},
	{ID: "graalvm", DisplayName: "GraalVM", Synonyms: []string{"graalvm_ce", "graalvm_community"}},
	{ID: "sapmachine", DisplayName: "SAP Machine"},
	{ID: "dragonwell", DisplayName: "Alibaba Dragonwell"},
	{ID: "semeru", DisplayName: "IBM Semeru"},
	{ID: "oracle", DisplayName: "Oracle JDK"},
	{ID: "microsoft", DisplayName: "Microsoft Build of OpenJDK"},
	{ID: "kona", DisplayName: "Tencent Kona"},
	{ID: "mandrel", DisplayName: "Mandrel"},
	{ID: "trava", DisplayName: "Trava OpenJDK"},
}

var byID = func() map[string]Distribution {
	m := make(map[string]Distribution, len(known)*2)
	for _, d := range known {
		m[d.ID] = d
		for _, syn := range d.Synonyms {
			m[syn] = d
		}
	}
	return m
}()

// ResolveDistribution looks up id (case-insensitive, synonyms included) in
// the known set; anything unrecognized becomes an "other" distribution that
// still round-trips through the cache and slug logic, per spec.md §3.
func ResolveDistribution(id string) Distribution {
	lowered := strings.ToLower(strings.TrimSpace(id))
	if d, ok := byID[lowered]; ok {
		return d
	}
	return Distribution{ID: lowered, DisplayName: lowered}
}

// KnownDistributions returns the closed vendor set, for `cache
// list-distributions` and completion.
func KnownDistributions() []Distribution {
	out := make([]Distribution, len(known))
	copy(out, known)
	return out
}
