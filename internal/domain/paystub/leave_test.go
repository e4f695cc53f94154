package paystub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveBalancesFirstPeriod(t *testing.T) {
	balances := leaveBalancesAt(PayTypeSalary, 1)

	require.NotNil(t, balances)
	assert.True(t, d("3.08").Equal(balances.VacationAccrued), "got %s", balances.VacationAccrued)
	assert.True(t, d("1.54").Equal(balances.SickAccrued), "got %s", balances.SickAccrued)
	assert.True(t, balances.VacationUsed.IsZero())
	assert.True(t, balances.SickUsed.IsZero())
	assert.True(t, balances.VacationBalance.Equal(balances.VacationAccrued))
	assert.True(t, balances.SickBalance.Equal(balances.SickAccrued))
}

func TestLeaveBalancesFullYear(t *testing.T) {
	balances := leaveBalancesAt(PayTypeSalary, 26)

	require.NotNil(t, balances)
	assert.True(t, d("80").Equal(balances.VacationAccrued), "got %s", balances.VacationAccrued)
	assert.True(t, d("40").Equal(balances.SickAccrued), "got %s", balances.SickAccrued)
}

func TestLeaveBalancesCapped(t *testing.T) {
	// Well past the cap: vacation plateaus at 120, sick at 80.
	balances := leaveBalancesAt(PayTypeSalary, 200)

	require.NotNil(t, balances)
	assert.True(t, d("120").Equal(balances.VacationBalance), "got %s", balances.VacationBalance)
	assert.True(t, d("80").Equal(balances.SickBalance), "got %s", balances.SickBalance)
}

func TestLeaveBalancesMonotonicUpToCap(t *testing.T) {
	prevVacation := d("0")
	prevSick := d("0")
	for index := 1; index <= 80; index++ {
		balances := leaveBalancesAt(PayTypeSalary, index)
		require.NotNil(t, balances)

		assert.True(t, balances.VacationBalance.GreaterThanOrEqual(prevVacation), "vacation dipped at period %d", index)
		assert.True(t, balances.SickBalance.GreaterThanOrEqual(prevSick), "sick dipped at period %d", index)
		assert.True(t, balances.VacationBalance.LessThanOrEqual(d("120")))
		assert.True(t, balances.SickBalance.LessThanOrEqual(d("80")))

		prevVacation = balances.VacationBalance
		prevSick = balances.SickBalance
	}
}

func TestLeaveBalancesOnlyForSalaried(t *testing.T) {
	assert.Nil(t, leaveBalancesAt(PayTypeHourly, 5))
	assert.Nil(t, leaveBalancesAt(PayTypeContractor, 5))
}
