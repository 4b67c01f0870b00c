//go:build darwin

package platform

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NewLoginItem returns the per-user launch agent for appName.
func NewLoginItem(appName string) (LoginItem, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate launch agents dir: %w", err)
	}

	label := launchAgentLabel(appName)
	return &fileLoginItem{
		path: filepath.Join(homeDir, "Library", "LaunchAgents", label+".plist"),
		render: func(execPath string) string {
			return buildLaunchAgentPlist(label, execPath)
		},
	}, nil
}

func launchAgentLabel(appName string) string {
	return "io.restbreak." + slug(appName)
}

func buildLaunchAgentPlist(label, execPath string) string {
	var plist strings.Builder
	plist.WriteString(xml.Header)
	plist.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	plist.WriteString("<plist version=\"1.0\">\n<dict>\n")
	plistString(&plist, "Label", label)
	plist.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n\t\t<string>")
	_ = xml.EscapeText(&plist, []byte(execPath))
	plist.WriteString("</string>\n\t</array>\n")
	plist.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	plistString(&plist, "ProcessType", "Interactive")
	plist.WriteString("</dict>\n</plist>\n")
	return plist.String()
}

func plistString(plist *strings.Builder, key, value string) {
	fmt.Fprintf(plist, "\t<key>%s</key>\n\t<string>", key)
	_ = xml.EscapeText(plist, []byte(value))
	plist.WriteString("</string>\n")
}
