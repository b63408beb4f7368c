package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/intheclouds/config"
	"github.com/quasilyte/gdata"
)

const calibrationKey = "calibration"

// SavedCalibration is the per-player rig calibration stored on disk.
type SavedCalibration struct {
	LeftHandOffset  [3]float64 `json:"leftHandOffset"`
	RightHandOffset [3]float64 `json:"rightHandOffset"`
	MaxArmLength    float64    `json:"maxArmLength"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for calibration storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadCalibration loads the calibration from disk. It returns nil, nil when
// persistence is unavailable or nothing has been saved yet.
func LoadCalibration() (*SavedCalibration, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(calibrationKey)
	if err != nil {
		log.Printf("Warning: Could not load calibration: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved calibration yet, use defaults
		return nil, nil
	}

	var c SavedCalibration
	if err := json.Unmarshal(data, &c); err != nil {
		log.Printf("Warning: Could not parse saved calibration: %v", err)
		return nil, err
	}
	return &c, nil
}

// SaveCalibration saves the calibration to disk
func SaveCalibration(c *SavedCalibration) error {
	if !gdataInitialized || gdataManager == nil || c == nil {
		return nil
	}

	data, err := json.Marshal(c)
	if err != nil {
		log.Printf("Warning: Could not serialize calibration: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(calibrationKey, data); err != nil {
		log.Printf("Warning: Could not save calibration: %v", err)
		return err
	}
	return nil
}

// CurrentCalibration captures the calibration values from the active config.
func CurrentCalibration() *SavedCalibration {
	return &SavedCalibration{
		LeftHandOffset:  cfg.Locomotion.LeftHandOffset,
		RightHandOffset: cfg.Locomotion.RightHandOffset,
		MaxArmLength:    cfg.Locomotion.MaxArmLength,
	}
}

// ApplyCalibration copies saved values into the config. Avatars created
// afterwards pick them up. A non-positive arm length keeps the default.
func ApplyCalibration(saved *SavedCalibration) {
	if saved == nil {
		return
	}
	cfg.Locomotion.LeftHandOffset = saved.LeftHandOffset
	cfg.Locomotion.RightHandOffset = saved.RightHandOffset
	if saved.MaxArmLength > 0 {
		cfg.Locomotion.MaxArmLength = saved.MaxArmLength
	}
}
