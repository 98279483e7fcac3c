package cli

import (
	"fmt"

	"github.com/diillson/cancer-stats-dashboard-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ____                            ____  _        _
  / ___|__ _ _ __   ___ ___ _ __  / ___|| |_ __ _| |_ ___
 | |   / _' | '_ \ / __/ _ \ '__| \___ \| __/ _' | __/ __|
 | |__| (_| | | | | (_|  __/ |     ___) | || (_| | |_\__ \
  \____\__,_|_| |_|\___\___|_|    |____/ \__\__,_|\__|___/
`
	magenta := color.New(color.FgMagenta, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(magenta(banner))
	fmt.Println(blue(fmt.Sprintf("Cancer Statistics Dashboard (v%s)", version.FormatVersion())))
}
