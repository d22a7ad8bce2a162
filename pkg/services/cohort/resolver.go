// Package cohort derives the cohort code for a run from which analytics
// sources are present and the ads-presence score.
package cohort

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
)

// ErrUnresolvedCohort is returned for source combinations the decision
// tree does not cover (e.g. quicksight+zylo without ignite). Callers must
// surface it; defaulting to an arbitrary cohort would plan the wrong
// report.
var ErrUnresolvedCohort = errors.New("cohort unresolved for source combination")

// Resolve walks the ordered decision tree: earlier rules win, later rules
// are unreachable once one matches. ads is only consulted on the
// quicksight branches and must be non-nil there.
func Resolve(presence domain.SourcePresence, ads *domain.AdsScore) (domain.CohortCode, error) {
	switch {
	case !presence.Quicksight && presence.Ignite && presence.Zylo && presence.MSP:
		return domain.Cohort4, nil
	case !presence.Quicksight && !presence.MSP && presence.Ignite && presence.Zylo:
		return domain.Cohort8, nil
	case !presence.Quicksight:
		return domain.Cohort0, nil
	}

	// Quicksight present from here on.
	if ads == nil {
		return "", fmt.Errorf("%w: quicksight present but no ads score", ErrUnresolvedCohort)
	}

	switch {
	case !presence.Zylo && presence.Ignite && presence.MSP:
		return flagged(domain.Cohort6a, domain.Cohort6b, domain.Cohort6, ads.Flag), nil
	case !presence.Zylo && !presence.MSP && presence.Ignite:
		return flagged(domain.Cohort7a, domain.Cohort7b, domain.Cohort7, ads.Flag), nil
	case presence.Ignite && presence.Zylo:
		// MSP presence does not split these branches; both use the
		// stringified ads score.
		return domain.CohortCode(strconv.Itoa(ads.Score)), nil
	}

	return "", fmt.Errorf("%w: quicksight=%t ignite=%t zylo=%t msp=%t",
		ErrUnresolvedCohort, presence.Quicksight, presence.Ignite, presence.Zylo, presence.MSP)
}

func flagged(active, inactive, fallback domain.CohortCode, flag int) domain.CohortCode {
	switch flag {
	case domain.AdsFlagActive:
		return active
	case domain.AdsFlagInactive:
		return inactive
	default:
		return fallback
	}
}
