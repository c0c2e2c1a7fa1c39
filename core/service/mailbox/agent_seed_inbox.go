package mailbox

import "time"

// builtinSeeds returns the sample inbox used when no seed file is
// configured. Ids are fixed so repeated syncs stay idempotent.
func builtinSeeds() []seedEmail {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	return []seedEmail{
		{
			ID:         "seed-001",
			Sender:     "maria.chen@acme-corp.com",
			Subject:    "Q3 planning deck",
			Body:       "Hi,\n\nLet's meet Friday to walk through the Q3 roadmap. Please send the slides by Thursday so everyone can review in advance.\n\nThanks,\nMaria",
			ReceivedAt: base,
		},
		{
			ID:         "seed-002",
			Sender:     "billing@cloudhost.example",
			Subject:    "Your invoice for May is ready",
			Body:       "Your monthly invoice of $142.50 is now available. Payment is due by June 15. No action is needed if you have autopay enabled.",
			ReceivedAt: base.Add(2 * time.Hour),
		},
		{
			ID:         "seed-003",
			Sender:     "dad@family.example",
			Subject:    "Weekend plans",
			Body:       "Are you still coming over on Saturday? Mom is making lasagna. Let us know by tomorrow evening so we can plan.",
			ReceivedAt: base.Add(5 * time.Hour),
		},
		{
			ID:         "seed-004",
			Sender:     "deals@shopmart.example",
			Subject:    "48 hours only: 30% off everything",
			Body:       "Don't miss our flash sale! Everything in the store is 30% off until midnight Sunday. Use code SAVE30 at checkout.",
			ReceivedAt: base.Add(26 * time.Hour),
		},
		{
			ID:         "seed-005",
			Sender:     "noreply@github.example",
			Subject:    "[repo] Build failed on main",
			Body:       "The CI pipeline for commit 4f2a91c failed during the integration test stage. View the full log in the actions tab.",
			ReceivedAt: base.Add(30 * time.Hour),
			IsRead:     true,
		},
		{
			ID:         "seed-006",
			Sender:     "james.okafor@acme-corp.com",
			Subject:    "Contract review needed",
			Body:       "Hi,\n\nLegal flagged two clauses in the vendor contract. Could you review sections 4 and 7 and send your comments by end of week? This is blocking the signature.\n\nBest,\nJames",
			ReceivedAt: base.Add(49 * time.Hour),
		},
	}
}
