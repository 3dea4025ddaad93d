package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mbndr/figlet4go"
)

// Banner prints the kopi startup banner shown by the no-argument CLI
// invocation, falling back to a plain tagline if figlet4go can't render.
func Banner() {
	render := figlet4go.NewAsciiRender()
	options := figlet4go.NewRenderOptions()
	options.FontName = "standard"

	output, err := render.RenderOpts("kopi", options)
	if err != nil || output == "" {
		fmt.Println(color.CyanString("kopi - JDK version manager"))
	} else {
		fmt.Print(color.New(color.FgHiBlue).Sprint(output))
	}
	fmt.Println(color.HiGreenString("[LTS]") + " versions preferred when ambiguous, newest first otherwise")
}
