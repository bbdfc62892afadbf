package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultApplication(t *testing.T) {
	app := NewDefaultApplication("宁德时代", "AA", SeverityHigh, "operator", "备注")

	assert.Equal(t, StatusPending, app.Status)
	assert.Contains(t, app.ApplicationID, "APP")
	assert.Equal(t, "宁德时代", app.CustomerName)
	assert.Nil(t, app.ApproveTime)
}

func TestDecide(t *testing.T) {
	app := NewDefaultApplication("宁德时代", "AA", SeverityHigh, "operator", "")

	require.NoError(t, app.Decide(true, "auditor", "属实"))
	assert.Equal(t, StatusApproved, app.Status)
	assert.Equal(t, "auditor", app.Approver)
	assert.Equal(t, "属实", app.ApproveRemark)
	require.NotNil(t, app.ApproveTime)
}

func TestDecideRejected(t *testing.T) {
	app := NewDefaultApplication("宁德时代", "AA", SeverityLow, "operator", "")

	require.NoError(t, app.Decide(false, "auditor", "证据不足"))
	assert.Equal(t, StatusRejected, app.Status)
}

func TestDecideTwiceReturnsConflict(t *testing.T) {
	app := NewDefaultApplication("宁德时代", "AA", SeverityHigh, "operator", "")
	require.NoError(t, app.Decide(true, "auditor", ""))

	err := app.Decide(false, "auditor", "")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	// 终态不被覆盖
	assert.Equal(t, StatusApproved, app.Status)
}

func TestSeverityValid(t *testing.T) {
	assert.True(t, SeverityHigh.Valid())
	assert.True(t, SeverityMedium.Valid())
	assert.True(t, SeverityLow.Valid())
	assert.False(t, Severity("EXTREME").Valid())
	assert.False(t, Severity("").Valid())
}
