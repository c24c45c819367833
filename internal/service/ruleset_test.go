package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
)

func TestUpsertRuleSetRejectsBadThresholds(t *testing.T) {
	st, _, _ := newFixture(t)
	svc := NewRuleSetService(st.Jobs, st.RuleSets)
	job := seedJob(t, st)

	_, err := svc.Upsert(context.Background(), job.ID, UpsertRuleSetInput{
		ShortlistThreshold: 20,
		RejectThreshold:    20,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.Upsert(context.Background(), job.ID, UpsertRuleSetInput{
		ShortlistThreshold: 20,
		RejectThreshold:    30,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestUpsertRuleSetUnknownJob(t *testing.T) {
	st, _, _ := newFixture(t)
	svc := NewRuleSetService(st.Jobs, st.RuleSets)

	_, err := svc.Upsert(context.Background(), uuid.New(), UpsertRuleSetInput{
		ShortlistThreshold: 35,
		RejectThreshold:    15,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestRuleSetRoundTripPreservesOrder(t *testing.T) {
	st, _, _ := newFixture(t)
	svc := NewRuleSetService(st.Jobs, st.RuleSets)
	job := seedJob(t, st)

	in := UpsertRuleSetInput{
		MustHave:           []string{"microfinance", "loan", "collections"},
		Preferred:          []string{"credit", "sacco"},
		ShortlistThreshold: 40,
		RejectThreshold:    10,
		AutoRegret:         true,
	}
	_, err := svc.Upsert(context.Background(), job.ID, in)
	require.NoError(t, err)

	got, err := svc.GetByJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"microfinance", "loan", "collections"}, []string(got.MustHave))
	assert.Equal(t, []string{"credit", "sacco"}, []string(got.Preferred))
	assert.Equal(t, 40.0, got.ShortlistThreshold)
	assert.Equal(t, 10.0, got.RejectThreshold)
	assert.True(t, got.AutoRegret)
}

func TestUpsertRuleSetReplacesExisting(t *testing.T) {
	st, _, _ := newFixture(t)
	svc := NewRuleSetService(st.Jobs, st.RuleSets)
	job := seedJob(t, st)

	_, err := svc.Upsert(context.Background(), job.ID, UpsertRuleSetInput{
		MustHave:           []string{"loan"},
		ShortlistThreshold: 35,
		RejectThreshold:    15,
	})
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), job.ID, UpsertRuleSetInput{
		MustHave:           []string{"sacco"},
		ShortlistThreshold: 50,
		RejectThreshold:    20,
	})
	require.NoError(t, err)

	got, err := svc.GetByJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sacco"}, []string(got.MustHave))
	assert.Equal(t, 50.0, got.ShortlistThreshold)
}
