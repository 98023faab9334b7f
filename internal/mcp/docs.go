package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `committee runs parliamentary meetings: a chair, a roster of members, a stack of pending motions and at most one open vote.

Core concepts:
- Meeting: in-progress until adjourned. Attendance starts absent for every roster member; members join to become present and voting.
- Motion: made from the chair on behalf of a member. Incidental motions are accepted at once; every other motion is pushed onto the pending stack.
- Floor motion: the top of the pending stack. Subsidiary motions (amend, close or limit debate) must name it in effects_id.
- Order of precedence: a new motion is in order only if it outranks the floor motion. An amendment may also match it.
- Vote: opened on the floor motion; only members present and voting get a ballot. Majority needs 2*yes > total, two-thirds needs 3*yes > 2*total. A tie is undecided and leaves the motion on the floor.

Typical workflow:
1) get_meeting to see the floor motion and whether a vote is open.
2) make_motion as chair; withdraw_motion as the owner while no vote is open.
3) begin_vote, cast_vote by each voter, end_vote.
4) adjourn_meeting tables whatever is still pending.

Errors come back as tool results with isError set and a JSON body {kind, message, fields}. kind is one of validation, authorization, not_found, conflict, persistence.

Docs:
- committee://docs/procedure
- committee://docs/motions
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "committee://docs/procedure",
		Name:        "procedure",
		Title:       "Meeting procedure",
		Description: "How motions, the pending stack, votes and adjournment interact.",
		Content: `# Meeting procedure

## Preconditions for make_motion

Checked in this order; the first failure is returned and nothing changes.

1. The meeting is not adjourned (conflict).
2. No vote is open (conflict).
3. The caller chairs the meeting (authorization).
4. The motion type exists and belongs to the meeting's motion set.
5. Subsidiary motions name the floor motion in effects_id; other classes must not set it.
6. An amendment targets an amendable, pending motion.
7. A type that requires a second has seconded_by_id naming a real user.
8. The owner exists.
9. The motion outranks the floor motion (an amendment may equal it).

## Votes

- begin_vote snapshots the members present and voting as pending ballots.
- cast_vote accepts yes, no or abstain and may be repeated until the vote ends.
- end_vote counts every ballot, pending ones included, in the total.
  - accepted and rejected motions leave the stack for the history.
  - undecided motions stay on the floor.
- A vote with no ballots at all is undecided.

## Adjournment

adjourn_meeting closes an open vote as abandoned, then tables every pending
motion from the bottom of the stack to the top. Adjourning twice is a conflict.
`,
	},
	{
		URI:         "committee://docs/motions",
		Name:        "motions",
		Title:       "Default motion set",
		Description: "The motion types seeded by createDefault and their rules.",
		Content: `# Default motion set

| Name | Class | Precedence | Second | Debatable | Amendable | Threshold |
|---|---|---|---|---|---|---|
| Main Motion | main | 1 | yes | yes | yes | majority |
| Motion to Amend | subsidiary | 6 | yes | yes | yes | majority |
| Motion to Close Debate | subsidiary | 2 | yes | no | no | two-thirds |
| Motion to Limit Debate | subsidiary | 3 | yes | limited | no | two-thirds |
| Point of Parliamentary Inquiry | incidental | 0 | no | no | no | n/a |

Classes rank incidental > privileged > subsidiary > main. Within a class a
lower precedence number ranks higher.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, _ *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      doc.URI,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
