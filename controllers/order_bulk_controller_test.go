package controllers

import (
	"testing"

	"github.com/hieudt-ng/SMMPanel/models"
	"github.com/hieudt-ng/SMMPanel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func bulkTestLookup() serverLookup {
	servers := map[uint]*models.ServiceServer{
		1: {
			Model:       gorm.Model{ID: 1},
			ServiceID:   10,
			Name:        "Tăng follow máy chủ 1",
			Price:       10000,
			MinQuantity: 100,
			MaxQuantity: 10000,
		},
		2: {
			Model:       gorm.Model{ID: 2},
			ServiceID:   10,
			Name:        "Tăng like máy chủ 2",
			Price:       1500,
			MinQuantity: 50,
			MaxQuantity: 5000,
		},
	}
	return func(id uint) (*models.ServiceServer, error) {
		server, found := servers[id]
		if !found {
			return nil, gorm.ErrRecordNotFound
		}
		return server, nil
	}
}

func TestValidateBulkLinesSkipsInvalidAndKeepsValid(t *testing.T) {
	lines := []BulkOrderLine{
		{ServerID: 1, Link: "https://example.com/p/1", Quantity: 500},
		{ServerID: 1, Link: "https://example.com/p/2", Quantity: 5}, // below min
	}

	valid, lineErrors, batchTotal := validateBulkLines(lines, bulkTestLookup())

	require.Len(t, valid, 1)
	require.Len(t, lineErrors, 1)
	assert.Equal(t, uint(1), valid[0].line.ServerID)
	assert.Equal(t, float64(5000), valid[0].price)
	assert.Equal(t, float64(5000), batchTotal)
	assert.Equal(t, 1, lineErrors[0].Index)
	assert.Contains(t, lineErrors[0].Error, utils.MsgQuantityOutOfRange)
}

func TestValidateBulkLinesErrorKinds(t *testing.T) {
	lines := []BulkOrderLine{
		{ServerID: 1, Link: "not-a-url", Quantity: 500},
		{ServerID: 99, Link: "https://example.com/p/3", Quantity: 500},
		{ServerID: 2, Link: "https://example.com/p/4", Quantity: 999},
	}

	valid, lineErrors, batchTotal := validateBulkLines(lines, bulkTestLookup())

	require.Len(t, valid, 1)
	require.Len(t, lineErrors, 2)
	assert.Equal(t, 0, lineErrors[0].Index)
	assert.Equal(t, 1, lineErrors[1].Index)
	assert.Equal(t, utils.MsgServerNotFound, lineErrors[1].Error)

	// 999 units at 1500 per thousand rounds 1498.5 up to 1499
	assert.Equal(t, float64(1499), valid[0].price)
	assert.Equal(t, float64(1499), batchTotal)
}

func TestValidateBulkLinesAllInvalid(t *testing.T) {
	lines := []BulkOrderLine{
		{ServerID: 99, Link: "https://example.com/p/5", Quantity: 500},
	}

	valid, lineErrors, batchTotal := validateBulkLines(lines, bulkTestLookup())

	assert.Empty(t, valid)
	assert.Len(t, lineErrors, 1)
	assert.Zero(t, batchTotal)
}

func TestValidateBulkLinesBatchTotalAccumulates(t *testing.T) {
	lines := []BulkOrderLine{
		{ServerID: 1, Link: "https://example.com/p/6", Quantity: 500},
		{ServerID: 2, Link: "https://example.com/p/7", Quantity: 1000},
	}

	valid, lineErrors, batchTotal := validateBulkLines(lines, bulkTestLookup())

	require.Len(t, valid, 2)
	assert.Empty(t, lineErrors)
	assert.Equal(t, float64(5000+1500), batchTotal)
}
