package battle

import (
	"slices"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/game/skill"
	"github.com/udisondev/chronicle/internal/random"
)

// chooseSkill picks the skill an actor uses this turn.
//
// Кандидаты: готовые скиллы, сначала атакующие, внутри группы в порядке
// таблицы. Лечение при полном HP пропускается. Один бросок NextN(100) идёт
// по накопленным шансам; бросок за пределами суммы или отсутствие шансов
// даёт атаку по умолчанию. Без кандидатов бросок не тратится.
func chooseSkill(a *Actor, src random.Source) *skill.Skill {
	var offensive, support []*skill.Skill
	for _, s := range a.skills {
		if !s.Ready() || s.Row.Chance <= 0 {
			continue
		}
		switch {
		case s.Row.Category.IsOffensive():
			offensive = append(offensive, s)
		case s.Row.Category == data.CategoryHeal && a.HP() >= a.MaxHP():
			// полное HP, лечить некого
		default:
			support = append(support, s)
		}
	}

	candidates := slices.Concat(offensive, support)
	if len(candidates) == 0 {
		return a.attack
	}

	roll := src.NextN(100)
	acc := 0
	for _, s := range candidates {
		acc += s.Row.Chance
		if roll < acc {
			return s
		}
	}
	return a.attack
}
