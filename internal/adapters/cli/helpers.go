package cli

import (
	"fmt"

	"github.com/koussay97/space-travel-TSP/internal/infrastructure/config"
)

// resolvePreset picks the booster preset for single-preset commands.
// Priority: --preset flag > user preferences > catalog.default_preset
func (a *app) resolvePreset(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	prefs, err := loadUserConfig()
	if err != nil {
		return "", err
	}
	if prefs.DefaultPreset != "" {
		return prefs.DefaultPreset, nil
	}

	return a.cfg.Catalog.DefaultPreset, nil
}

// resolveVehicle picks the vehicle for the tour command.
// Priority: --vehicle flag > user preferences.
// Returns error only if no vehicle can be identified from any source
func resolveVehicle(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	prefs, err := loadUserConfig()
	if err != nil {
		return "", err
	}
	if prefs.DefaultVehicle != "" {
		return prefs.DefaultVehicle, nil
	}

	return "", fmt.Errorf("no vehicle specified: use --vehicle, or set a default with 'spacetour config set-vehicle'")
}

func loadUserConfig() (*config.UserConfig, error) {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	prefs, err := handler.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	return prefs, nil
}
