package mysql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wyfcoding/defaultmanagement/internal/defaultapp/domain"
)

func TestResetForRetryRegeneratesBusinessID(t *testing.T) {
	app := domain.NewDefaultApplication("宁德时代", "AA", domain.SeverityHigh, "operator", "连续两个季度亏损")
	originalID := app.ApplicationID
	app.ID = 7
	app.CustomerID = 3

	attachments := []domain.Attachment{
		{FileName: "评级报告.pdf", FileURL: "https://files.example.com/rating.pdf"},
	}
	attachments[0].ID = 11
	attachments[0].ApplicationID = 7

	resetForRetry(app, attachments)

	assert.Zero(t, app.ID)
	assert.Zero(t, app.CustomerID)
	// 唯一键冲突可能出在业务编号上，原样重放只会再次冲突
	assert.NotEqual(t, originalID, app.ApplicationID)
	assert.True(t, strings.HasPrefix(app.ApplicationID, "APP"))
	assert.Zero(t, attachments[0].ID)
	assert.Zero(t, attachments[0].ApplicationID)
}
