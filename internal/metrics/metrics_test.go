package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/meeting"
	"github.com/ganot/committee/internal/domain/motion"
	"github.com/ganot/committee/internal/domain/voting"
	"github.com/stretchr/testify/require"
)

var _ meeting.Observer = (*Observer)(nil)

func scrape(t *testing.T, o *Observer) string {
	t.Helper()
	rec := httptest.NewRecorder()
	o.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserver_Counts(t *testing.T) {
	o := NewObserver(nil)

	o.MeetingStarted()
	o.MotionMade(catalog.ClassMain)
	o.MotionMade(catalog.ClassIncidental)
	o.MotionMade(catalog.ClassMain)
	o.BallotCast()
	o.BallotCast()
	o.VoteClosed(voting.OutcomeAccepted)
	o.MotionResolved(motion.StatusAccepted)
	o.MotionResolved(motion.StatusTabled)
	o.MeetingAdjourned()

	body := scrape(t, o)
	for _, line := range []string{
		"committee_meetings_started_total 1",
		"committee_meetings_adjourned_total 1",
		`committee_motions_made_total{class="main"} 2`,
		`committee_motions_made_total{class="incidental"} 1`,
		"committee_ballots_cast_total 2",
		`committee_votes_closed_total{outcome="accepted"} 1`,
		`committee_motions_resolved_total{status="accepted"} 1`,
		`committee_motions_resolved_total{status="tabled"} 1`,
	} {
		require.Contains(t, body, line)
	}
}

func TestObserver_SeparateRegistries(t *testing.T) {
	a := NewObserver(nil)
	b := NewObserver(nil)
	a.VoteClosed(voting.OutcomeUndecided)

	require.Contains(t, scrape(t, a), `committee_votes_closed_total{outcome="undecided"} 1`)
	require.NotContains(t, scrape(t, b), `outcome="undecided"`)
	require.Contains(t, scrape(t, b), "committee_meetings_started_total 0")
}
