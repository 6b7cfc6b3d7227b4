package odk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// odataPage is one page of the OData Submissions entity set
type odataPage struct {
	Value    []json.RawMessage `json:"value"`
	Count    *int              `json:"@odata.count"`
	NextLink string            `json:"@odata.nextLink"`
}

func (c *Client) projectPath(elem ...string) string {
	p := fmt.Sprintf("/v1/projects/%d", c.projectID)
	for _, e := range elem {
		p += "/" + url.PathEscape(e)
	}
	return p
}

func (c *Client) submissionsPath(formID types.FormID) string {
	return c.projectPath("forms", formID.String()+".svc", "Submissions")
}

func (c *Client) fetchPage(ctx context.Context, formID types.FormID, top, skip int) (*odataPage, error) {
	query := url.Values{}
	query.Set("$top", strconv.Itoa(top))
	query.Set("$skip", strconv.Itoa(skip))
	query.Set("$count", "true")

	body, err := c.get(ctx, c.submissionsPath(formID), query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch submissions",
			goerr.V("form_id", formID),
			goerr.V("skip", skip))
	}

	var page odataPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, goerr.Wrap(err, "failed to decode submissions page",
			goerr.T(model.ErrTagTransport),
			goerr.V("form_id", formID),
			goerr.V("skip", skip))
	}
	return &page, nil
}

// FetchSubmissions implements interfaces.SubmissionSource. It walks every
// OData page of the form and returns the complete submission list.
func (c *Client) FetchSubmissions(ctx context.Context, formID types.FormID) ([]model.RawSubmission, error) {
	var submissions []model.RawSubmission

	for skip := 0; ; {
		page, err := c.fetchPage(ctx, formID, c.pageSize, skip)
		if err != nil {
			return nil, err
		}

		for _, v := range page.Value {
			submissions = append(submissions, model.RawSubmission(v))
		}
		skip += len(page.Value)

		ctxlog.From(ctx).Debug("Fetched submissions page",
			"form_id", formID,
			"page", len(page.Value),
			"total", skip)

		if len(page.Value) == 0 || (page.NextLink == "" && len(page.Value) < c.pageSize) {
			break
		}
		if page.Count != nil && skip >= *page.Count {
			break
		}
	}

	if submissions == nil {
		submissions = []model.RawSubmission{}
	}
	return submissions, nil
}

// CountSubmissions implements interfaces.FormCatalog
func (c *Client) CountSubmissions(ctx context.Context, formID types.FormID) (int, error) {
	page, err := c.fetchPage(ctx, formID, 0, 0)
	if err != nil {
		return 0, err
	}
	if page.Count == nil {
		return 0, goerr.New("submission count missing from response",
			goerr.T(model.ErrTagTransport),
			goerr.V("form_id", formID))
	}
	return *page.Count, nil
}

// formResponse is a form as listed by the REST API
type formResponse struct {
	XMLFormID string    `json:"xmlFormId"`
	Name      *string   `json:"name"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListForms implements interfaces.FormCatalog
func (c *Client) ListForms(ctx context.Context) ([]*model.Form, error) {
	body, err := c.get(ctx, c.projectPath("forms"), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list forms", goerr.V("project_id", c.projectID))
	}

	var resp []formResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to decode forms",
			goerr.T(model.ErrTagTransport),
			goerr.V("project_id", c.projectID))
	}

	forms := make([]*model.Form, 0, len(resp))
	for _, f := range resp {
		form := &model.Form{
			ID:        types.FormID(f.XMLFormID),
			Name:      f.XMLFormID,
			State:     f.State,
			CreatedAt: f.CreatedAt,
		}
		if f.Name != nil && *f.Name != "" {
			form.Name = *f.Name
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// DownloadAttachment implements interfaces.AttachmentSource
func (c *Client) DownloadAttachment(ctx context.Context, formID types.FormID, instanceID types.InstanceID, filename string) ([]byte, error) {
	path := c.projectPath("forms", formID.String(), "submissions", instanceID.String(), "attachments", filename)
	data, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download attachment",
			goerr.V("form_id", formID),
			goerr.V("instance_id", instanceID),
			goerr.V("filename", filename))
	}
	return data, nil
}
