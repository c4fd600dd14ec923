package combat

// Vitals is the health and armor pair every combatant carries.
type Vitals struct {
	Health int
	Armor  int
}

// Dead reports the terminal condition health <= 0.
func (v Vitals) Dead() bool {
	return v.Health <= 0
}

// DamageResult describes the outcome of one ApplyDamage call.
type DamageResult struct {
	Health int
	Armor  int
	Dead   bool
	// Killed is true only on the call that moved health from above zero
	// to zero or below.
	Killed bool
}

// ApplyDamage subtracts amount from v, armor first. Negative amounts count
// as zero, and a target that is already dead is left untouched.
func ApplyDamage(v *Vitals, amount int) DamageResult {
	if v.Dead() {
		return DamageResult{Health: v.Health, Armor: v.Armor, Dead: true}
	}
	if amount < 0 {
		amount = 0
	}

	if v.Armor > 0 {
		absorbed := min(v.Armor, amount)
		v.Armor -= absorbed
		amount -= absorbed
	}
	v.Health -= amount

	v.Armor = max(v.Armor, 0)
	v.Health = max(v.Health, 0)

	dead := v.Dead()
	return DamageResult{Health: v.Health, Armor: v.Armor, Dead: dead, Killed: dead}
}
