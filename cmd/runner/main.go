package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Mshel/urkusteps/internal/game"
	"github.com/Mshel/urkusteps/internal/journey"
	"github.com/Mshel/urkusteps/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	settings, err := game.LoadSettings()
	if err != nil {
		fmt.Printf("could not read settings: %v\n", err)
		os.Exit(1)
	}

	// the program owns the terminal, logs go to a file
	logFile, err := tea.LogToFile("urku.log", "urku")
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}
	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		log.SetLevel(level)
	}

	level, err := game.LoadLevel(settings.LevelPath)
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	journeys, err := game.NewJourneyService(settings.DBPath)
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	defer journeys.Close()

	var deviceLocation *journey.LatLng
	if raw := os.Getenv("URKU_LOCATION"); raw != "" {
		if location, err := journey.ParseLatLng(raw); err == nil {
			deviceLocation = &location
		} else {
			log.Warn("Ignoring URKU_LOCATION", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services := ui.Services{
		Level:    level,
		Assets:   game.LoadEmbeddedAssets(),
		Journeys: journeys,
		Rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	p := tea.NewProgram(ui.NewControllerModel(ctx, services, deviceLocation, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
