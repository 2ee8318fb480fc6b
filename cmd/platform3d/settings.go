package main

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"

	"platform3d/internal/physics"
)

// savedSettings is the persisted panel state.
type savedSettings struct {
	Gravity        float32 `json:"gravity"`
	StepHeight     float32 `json:"stepHeight"`
	StepProbes     int     `json:"stepProbes"`
	GroundNormalY  float32 `json:"groundNormalY"`
	StableSlopeDeg float32 `json:"stableSlopeDeg"`
	ShowContacts   bool    `json:"showContacts"`
}

const settingsItem = "tuning"

var settingsManager *gdata.Manager

// initPersistence opens the gdata store. On failure the sandbox still runs,
// it just forgets panel edits between sessions.
func initPersistence() {
	m, err := gdata.Open(gdata.Config{
		AppName: "platform3d",
	})
	if err != nil {
		log.Printf("Warning: settings persistence unavailable: %v", err)
		return
	}
	settingsManager = m
}

func loadSettings() *savedSettings {
	if settingsManager == nil {
		return nil
	}
	data, err := settingsManager.LoadItem(settingsItem)
	if err != nil {
		log.Printf("Warning: could not load settings: %v", err)
		return nil
	}
	if data == nil {
		return nil
	}
	var s savedSettings
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("Warning: could not parse saved settings: %v", err)
		return nil
	}
	return &s
}

func saveSettings(s savedSettings) {
	if settingsManager == nil {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: could not serialize settings: %v", err)
		return
	}
	if err := settingsManager.SaveItem(settingsItem, data); err != nil {
		log.Printf("Warning: could not save settings: %v", err)
	}
}

func applySettings(s *savedSettings, tuning *physics.Tuning, panel *tuningPanel) {
	if s == nil {
		return
	}
	tuning.Gravity = s.Gravity
	tuning.StepHeight = s.StepHeight
	if s.StepProbes > 0 {
		tuning.StepProbes = s.StepProbes
	}
	if s.GroundNormalY > 0 {
		tuning.GroundNormalY = s.GroundNormalY
	}
	tuning.StableSlopeDeg = s.StableSlopeDeg
	panel.ShowContacts = s.ShowContacts
}

func snapshotSettings(tuning physics.Tuning, panel *tuningPanel) savedSettings {
	return savedSettings{
		Gravity:        tuning.Gravity,
		StepHeight:     tuning.StepHeight,
		StepProbes:     tuning.StepProbes,
		GroundNormalY:  tuning.GroundNormalY,
		StableSlopeDeg: tuning.StableSlopeDeg,
		ShowContacts:   panel.ShowContacts,
	}
}
