package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktikasud-backend/models"
)

func TestProcedureFor(t *testing.T) {
	cases := []struct {
		amount int64
		want   models.ProcedureType
	}{
		{0, models.ProcedureInsufficientAmount},
		{24_999, models.ProcedureInsufficientAmount},
		{25_000, models.ProcedureExtrajudicial},
		{499_999, models.ProcedureExtrajudicial},
		{500_000, models.ProcedureOptional},
		{999_999, models.ProcedureOptional},
		{1_000_000, models.ProcedureJudicial},
		{50_000_000, models.ProcedureJudicial},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ProcedureFor(tc.amount), "amount %d", tc.amount)
	}
}

func TestEvaluateBankruptcy(t *testing.T) {
	t.Run("Should select extrajudicial procedure", func(t *testing.T) {
		bc := EvaluateBankruptcy("долг 300000 рублей")
		assert.True(t, bc.IsBankruptcy)
		require.NotNil(t, bc.DebtAmount)
		assert.Equal(t, int64(300_000), *bc.DebtAmount)
		assert.Equal(t, models.ProcedureExtrajudicial, bc.Procedure)
		assert.Equal(t, []string{
			`Федеральный закон от 26.10.2002 N 127-ФЗ "О несостоятельности (банкротстве)"`,
			"Статья 223.1 - Внесудебное банкротство",
			"Статья 223.2 - Условия внесудебного банкротства",
			"Статья 223.3 - Процедура внесудебного банкротства",
		}, bc.ApplicableLaws)
	})

	t.Run("Should select judicial procedure", func(t *testing.T) {
		bc := EvaluateBankruptcy("долг 2 млн рублей")
		assert.Equal(t, models.ProcedureJudicial, bc.Procedure)
		assert.Contains(t, bc.ApplicableLaws, "Статья 213.3 - Условия признания банкротом")
	})

	t.Run("Should not flag queries without trigger words", func(t *testing.T) {
		bc := EvaluateBankruptcy("Уволили без приказа, хочу восстановиться")
		assert.False(t, bc.IsBankruptcy)
		assert.Equal(t, models.ProcedureNone, bc.Procedure)
		assert.Empty(t, bc.ApplicableLaws)
		assert.False(t, bc.GenericAdvice)
	})

	t.Run("Should leave procedure empty without an amount", func(t *testing.T) {
		bc := EvaluateBankruptcy("Хочу пройти банкротство")
		assert.True(t, bc.IsBankruptcy)
		assert.Nil(t, bc.DebtAmount)
		assert.False(t, bc.HasProcedure())
	})

	t.Run("Should flag generic advice for empty input", func(t *testing.T) {
		bc := EvaluateBankruptcy("  ")
		assert.False(t, bc.IsBankruptcy)
		assert.True(t, bc.GenericAdvice)
	})

	t.Run("Should return independent citation slices", func(t *testing.T) {
		a := EvaluateBankruptcy("долг 10 тысяч")
		a.ApplicableLaws[0] = "changed"
		b := EvaluateBankruptcy("долг 10 тысяч")
		assert.Equal(t, "Сумма долга недостаточна для процедуры банкротства", b.ApplicableLaws[0])
	})
}
