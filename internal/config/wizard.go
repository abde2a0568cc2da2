package config

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
)

// detectDocument returns the first PDF in the current directory, or the
// default locator when there is none.
func detectDocument() string {
	matches, _ := filepath.Glob("*.pdf")
	if len(matches) > 0 {
		return matches[0]
	}
	return DefaultConfig().Document
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to flipbook! Let's configure your viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Document.
	docPrompt := promptui.Prompt{
		Label:   "Document to open (path or http(s) URL)",
		Default: detectDocument(),
	}
	doc, err := docPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	cfg.Document = doc

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port for the viewer",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Headless layout.
	items := make([]string, len(LayoutPresets))
	for i, p := range LayoutPresets {
		items[i] = fmt.Sprintf("%-8s %4.0fpx @ %.0fx", p.Name, p.ContainerWidth, p.PixelDensity)
	}
	layoutPrompt := promptui.Select{
		Label: "Layout for headless rendering (MCP)",
		Items: items,
	}
	idx, _, err := layoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("layout selection: %w", err)
	}
	cfg.ContainerWidth = LayoutPresets[idx].ContainerWidth
	cfg.PixelDensity = LayoutPresets[idx].PixelDensity

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("must be between 1 and 65535")
	}
	return nil
}
