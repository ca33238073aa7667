package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"praktikasud-backend/models"
)

func TestClassify(t *testing.T) {
	t.Run("Should return general with low confidence for empty input", func(t *testing.T) {
		for _, q := range []string{"", "   \n\t", string([]byte{0xff, 0xfe})} {
			got := Classify(q)
			assert.Equal(t, models.DomainGeneral, got.Domain)
			assert.True(t, got.LowConfidence)
		}
	})

	t.Run("Should classify a dismissal story as labor", func(t *testing.T) {
		got := Classify("Уволили без приказа, хочу восстановиться")
		assert.Equal(t, models.DomainLabor, got.Domain)
		assert.False(t, got.LowConfidence)
		assert.Equal(t, models.DomainHit{Domain: models.DomainLabor, Count: 2}, got.Hits[0])
	})

	t.Run("Should pick the domain with the most keyword hits", func(t *testing.T) {
		assert.Equal(t, models.DomainFamily, Classify("Развод и алименты на ребенка").Domain)
		assert.Equal(t, models.DomainCriminal, Classify("Обжалую приговор суда").Domain)
		assert.Equal(t, models.DomainBankruptcy, Classify("банкротство, долг 2000000 рублей").Domain)
	})

	t.Run("Should break ties by canonical domain order", func(t *testing.T) {
		// "штраф" belongs to both labor and administrative lists
		got := Classify("Получил штраф")
		assert.Equal(t, models.DomainLabor, got.Domain)
		assert.Equal(t, 1, got.Hits[0].Count)
		assert.Equal(t, models.DomainAdministrative, got.Hits[4].Domain)
		assert.Equal(t, 1, got.Hits[4].Count)
	})

	t.Run("Should count each keyword once regardless of repetitions", func(t *testing.T) {
		got := Classify("долг долг долг, финансовый управляющий")
		assert.Equal(t, models.DomainBankruptcy, got.Domain)
		assert.Equal(t, 2, got.Hits[5].Count)
	})

	t.Run("Should return general when nothing matches", func(t *testing.T) {
		got := Classify("Какая сегодня погода?")
		assert.Equal(t, models.DomainGeneral, got.Domain)
		assert.False(t, got.LowConfidence)
		assert.Len(t, got.Hits, 7)
	})

	t.Run("Should always return one of the fixed tags", func(t *testing.T) {
		allowed := map[models.Domain]bool{
			models.DomainLabor: true, models.DomainCivil: true, models.DomainFamily: true,
			models.DomainHousing: true, models.DomainAdministrative: true, models.DomainBankruptcy: true,
			models.DomainCriminal: true, models.DomainGeneral: true,
		}
		for _, q := range []string{"квартира и тсж", "договор аренды", "гибдд парковка", "x", "123"} {
			assert.True(t, allowed[Classify(q).Domain], q)
		}
	})
}
