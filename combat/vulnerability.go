package combat

import (
	"time"

	"github.com/automoto/intheclouds/config"
)

// Vulnerability is the receiving side of a hit: health, a short window after
// each hit in which further damage is ignored, and the alive gate.
type Vulnerability struct {
	max      int
	health   int
	cooldown time.Duration

	lastDamage time.Duration
	damaged    bool
}

// NewVulnerability creates a target at full health.
func NewVulnerability(cfg config.HealthConfig) *Vulnerability {
	return &Vulnerability{
		max:      cfg.StartingHealth,
		health:   cfg.StartingHealth,
		cooldown: cfg.DamageCooldown,
	}
}

// Alive reports whether health is above zero.
func (v *Vulnerability) Alive() bool {
	return v.health > 0
}

func (v *Vulnerability) Health() int {
	return v.health
}

func (v *Vulnerability) Max() int {
	return v.max
}

// CanDamage reports whether damage at now would be applied.
func (v *Vulnerability) CanDamage(now time.Duration) bool {
	if !v.Alive() {
		return false
	}
	return !v.damaged || now-v.lastDamage >= v.cooldown
}

// TakeDamage subtracts amount. It reports whether the damage was applied and
// whether it was fatal.
func (v *Vulnerability) TakeDamage(amount int, now time.Duration) (applied, died bool) {
	if amount <= 0 || !v.CanDamage(now) {
		return false, false
	}
	v.health -= amount
	if v.health <= 0 {
		v.health = 0
		died = true
	}
	v.lastDamage = now
	v.damaged = true
	return true, died
}

// Restore brings the target back at full health.
func (v *Vulnerability) Restore() {
	v.health = v.max
	v.damaged = false
	v.lastDamage = 0
}
