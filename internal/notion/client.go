package notion

import (
	"context"
	"fmt"

	gnt "github.com/dstotijn/go-notion"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

type Client struct {
	api        *gnt.Client
	databaseID string
}

func New(token, databaseID string) *Client {
	return &Client{
		api:        gnt.NewClient(token),
		databaseID: databaseID,
	}
}

// Ping just tries a tiny QueryDatabase to see if the DB is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	return err
}

// helper: build a valid Notion rich_text slice from a plain string.
func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{
		{
			Text: &gnt.Text{
				Content: s,
			},
		},
	}
}

func buildShortlistProperties(job models.Job, a models.ScoredApplicant) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	// Name: Title (required title property)
	props["Name"] = gnt.DatabasePageProperty{
		Title: richText(a.Name),
	}

	// Job: Text
	if job.Title != "" {
		props["Job"] = gnt.DatabasePageProperty{
			RichText: richText(job.Title),
		}
	}

	// Match: Text, e.g. "87% (high)"
	props["Match"] = gnt.DatabasePageProperty{
		RichText: richText(fmt.Sprintf("%d%% (%s)", a.MatchScore, models.TierFor(a.MatchScore))),
	}

	// Status: Select
	props["Status"] = gnt.DatabasePageProperty{
		Select: &gnt.SelectOptions{
			Name: a.Status.Label(),
		},
	}

	if a.Email != "" {
		props["Email"] = gnt.DatabasePageProperty{
			RichText: richText(a.Email),
		}
	}

	if a.ResumeURL != "" {
		props["Resume"] = gnt.DatabasePageProperty{
			URL: &a.ResumeURL,
		}
	}

	return props
}

// PublishShortlist creates one row per applicant in the shortlist database
// and returns the created page ids in the same order.
func (c *Client) PublishShortlist(ctx context.Context, job models.Job, shortlist []models.ScoredApplicant) ([]string, error) {
	pageIDs := make([]string, 0, len(shortlist))
	for _, a := range shortlist {
		props := buildShortlistProperties(job, a)

		params := gnt.CreatePageParams{
			ParentType:             gnt.ParentTypeDatabase,
			ParentID:               c.databaseID,
			DatabasePageProperties: &props,
		}

		page, err := c.api.CreatePage(ctx, params)
		if err != nil {
			return pageIDs, fmt.Errorf("failed to create shortlist page for %s: %w", a.Name, err)
		}
		pageIDs = append(pageIDs, page.ID)
	}
	return pageIDs, nil
}
