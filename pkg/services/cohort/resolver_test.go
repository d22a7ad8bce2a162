package cohort

import (
	"testing"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(s, flag int) *domain.AdsScore {
	return &domain.AdsScore{Score: s, Flag: flag}
}

func TestResolve_NoQuicksight(t *testing.T) {
	tests := []struct {
		name     string
		presence domain.SourcePresence
		want     domain.CohortCode
	}{
		{
			name:     "ignite+zylo+msp is cohort 4",
			presence: domain.SourcePresence{Ignite: true, Zylo: true, MSP: true},
			want:     domain.Cohort4,
		},
		{
			name:     "ignite+zylo without msp is cohort 8",
			presence: domain.SourcePresence{Ignite: true, Zylo: true},
			want:     domain.Cohort8,
		},
		{
			name:     "nothing else is cohort 0",
			presence: domain.SourcePresence{},
			want:     domain.Cohort0,
		},
		{
			name:     "ignite only is cohort 0",
			presence: domain.SourcePresence{Ignite: true},
			want:     domain.Cohort0,
		},
		{
			name:     "zylo+msp without ignite is cohort 0",
			presence: domain.SourcePresence{Zylo: true, MSP: true},
			want:     domain.Cohort0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The ads score must be irrelevant on these branches.
			got, err := Resolve(tt.presence, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_QuicksightBranches(t *testing.T) {
	tests := []struct {
		name     string
		presence domain.SourcePresence
		ads      *domain.AdsScore
		want     domain.CohortCode
	}{
		{
			name:     "no zylo, ignite+msp, inactive ads",
			presence: domain.SourcePresence{Quicksight: true, Ignite: true, MSP: true},
			ads:      score(1, domain.AdsFlagInactive),
			want:     domain.Cohort6b,
		},
		{
			name:     "no zylo, ignite+msp, active ads",
			presence: domain.SourcePresence{Quicksight: true, Ignite: true, MSP: true},
			ads:      score(1, domain.AdsFlagActive),
			want:     domain.Cohort6a,
		},
		{
			name:     "no zylo, ignite+msp, indeterminate flag",
			presence: domain.SourcePresence{Quicksight: true, Ignite: true, MSP: true},
			ads:      &domain.AdsScore{Score: 2, Flag: -1},
			want:     domain.Cohort6,
		},
		{
			name:     "no zylo, no msp, ignite, inactive ads",
			presence: domain.SourcePresence{Quicksight: true, Ignite: true},
			ads:      score(5, domain.AdsFlagInactive),
			want:     domain.Cohort7b,
		},
		{
			name:     "no zylo, no msp, ignite, active ads",
			presence: domain.SourcePresence{Quicksight: true, Ignite: true},
			ads:      score(5, domain.AdsFlagActive),
			want:     domain.Cohort7a,
		},
		{
			name:     "all four sources, score 1",
			presence: domain.SourcePresence{Quicksight: true, Ignite: true, Zylo: true, MSP: true},
			ads:      score(1, domain.AdsFlagActive),
			want:     domain.Cohort1,
		},
		{
			name:     "all four sources, score 2",
			presence: domain.SourcePresence{Quicksight: true, Ignite: true, Zylo: true, MSP: true},
			ads:      score(2, domain.AdsFlagInactive),
			want:     domain.Cohort2,
		},
		{
			name:     "no msp, score 5",
			presence: domain.SourcePresence{Quicksight: true, Ignite: true, Zylo: true},
			ads:      score(5, domain.AdsFlagActive),
			want:     domain.Cohort5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.presence, tt.ads)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_EarlierRulesWin(t *testing.T) {
	// ignite+zylo+msp without quicksight must hit cohort 4 before any
	// quicksight branch could ever be considered.
	got, err := Resolve(domain.SourcePresence{Ignite: true, Zylo: true, MSP: true}, score(1, 1))
	require.NoError(t, err)
	assert.Equal(t, domain.Cohort4, got)
}

func TestResolve_Unresolved(t *testing.T) {
	t.Run("quicksight+zylo without ignite", func(t *testing.T) {
		_, err := Resolve(domain.SourcePresence{Quicksight: true, Zylo: true}, score(1, 1))
		assert.ErrorIs(t, err, ErrUnresolvedCohort)
	})

	t.Run("quicksight alone", func(t *testing.T) {
		_, err := Resolve(domain.SourcePresence{Quicksight: true}, score(2, 0))
		assert.ErrorIs(t, err, ErrUnresolvedCohort)
	})

	t.Run("quicksight without ads score", func(t *testing.T) {
		_, err := Resolve(domain.SourcePresence{Quicksight: true, Ignite: true, Zylo: true, MSP: true}, nil)
		assert.ErrorIs(t, err, ErrUnresolvedCohort)
	})
}

func TestResolve_Pure(t *testing.T) {
	presence := domain.SourcePresence{Ignite: true, Zylo: true, MSP: true}
	first, err := Resolve(presence, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Resolve(presence, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, domain.Cohort4, first)
}
