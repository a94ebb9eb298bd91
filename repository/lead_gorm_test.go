package repository

import (
	"context"
	"testing"

	domainLead "github.com/sibinaravind/lead-management-back-sub001/domains/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) domainLead.ILeadRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := NewLeadRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestCreateIfAbsentDeduplicatesByPhone(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateIfAbsent(ctx, &domainLead.Lead{
		Name:   "Asha",
		Phone:  "919876543210@s.whatsapp.net",
		Source: "whatsapp",
		Status: "new",
	})
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, &domainLead.Lead{
		Name:   "Asha Again",
		Phone:  "919876543210@s.whatsapp.net",
		Source: "whatsapp",
		Status: "new",
	})
	assert.NoError(t, err)
	assert.False(t, created)

	lead, err := repo.GetByPhone(ctx, "919876543210@s.whatsapp.net")
	assert.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "Asha", lead.Name)
}

func TestGetByPhoneMissing(t *testing.T) {
	repo := newTestRepo(t)

	lead, err := repo.GetByPhone(context.Background(), "nobody@s.whatsapp.net")
	assert.NoError(t, err)
	assert.Nil(t, lead)
}

func TestListAndUpdateStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, phone := range []string{"911111111111@s.whatsapp.net", "912222222222@s.whatsapp.net"} {
		_, err := repo.CreateIfAbsent(ctx, &domainLead.Lead{Phone: phone, Source: "whatsapp", Status: "new"})
		require.NoError(t, err)
	}

	leads, err := repo.List(ctx, 10, 0)
	assert.NoError(t, err)
	assert.Len(t, leads, 2)

	err = repo.UpdateStatus(ctx, "911111111111@s.whatsapp.net", "contacted")
	assert.NoError(t, err)

	lead, err := repo.GetByPhone(ctx, "911111111111@s.whatsapp.net")
	assert.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "contacted", lead.Status)

	err = repo.UpdateStatus(ctx, "913333333333@s.whatsapp.net", "contacted")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
