package install

import (
	"encoding/json"
	"os"
)

func writeInstallMeta(path string, meta InstallMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadInstallMeta loads a written InstallMeta, used by the shim dispatcher
// to find java_home_suffix without re-parsing the whole installation.
func ReadInstallMeta(path string) (InstallMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InstallMeta{}, err
	}
	var meta InstallMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return InstallMeta{}, err
	}
	return meta, nil
}
