package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BackendError is a structured rejection from the hosted document database.
type BackendError struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error %d (%s): %s", e.Code, e.Type, e.Message)
}

// IsNotFound reports whether err is the backend telling us a document does not
// exist. Single-document reads translate this to an absent result; update and
// delete surface it as a hard failure.
func IsNotFound(err error) bool {
	var be *BackendError
	if !errors.As(err, &be) {
		return false
	}
	return be.Code == 404 || be.Type == "document_not_found"
}

// IsShapeSchemaRejection reports whether err is the backend rejecting a write
// because the objects collection schema does not know the shape attribute.
// This is the one error the repositories retry (once, with shape stripped).
func IsShapeSchemaRejection(err error) bool {
	var be *BackendError
	if !errors.As(err, &be) {
		return false
	}
	if be.Code != 400 && be.Type != "document_invalid_structure" {
		return false
	}
	return strings.Contains(strings.ToLower(be.Message), "shape")
}

// DocumentList is a page of raw documents from a collection.
type DocumentList struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

// Query builders for list reads. The backend takes them verbatim as
// queries[] parameters.

// OrderDesc orders a list read by the given attribute, newest first when used
// with $createdAt.
func OrderDesc(attribute string) string {
	return fmt.Sprintf(`orderDesc("%s")`, attribute)
}

// Limit bounds the number of documents a list read returns.
func Limit(n int) string {
	return fmt.Sprintf("limit(%d)", n)
}

// DocumentClient talks to the hosted document database over its REST API. All
// documents live in collections under a single database; the backend assigns
// ids and creation timestamps.
type DocumentClient struct {
	httpClient *resty.Client
	databaseID string
	logger     *zap.Logger
}

// NewDocumentClient creates a client for the given endpoint and project
// credentials.
func NewDocumentClient(endpoint, projectID, apiKey, databaseID string, logger *zap.Logger) *DocumentClient {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-Project", projectID).
		SetHeader("X-API-Key", apiKey)

	return &DocumentClient{
		httpClient: client,
		databaseID: databaseID,
		logger:     logger,
	}
}

func (c *DocumentClient) documentsPath(collectionID string) string {
	return fmt.Sprintf("/v1/databases/%s/collections/%s/documents", c.databaseID, collectionID)
}

func (c *DocumentClient) documentPath(collectionID, documentID string) string {
	return fmt.Sprintf("%s/%s", c.documentsPath(collectionID), documentID)
}

// fail turns a resty response into a typed error. Transport failures wrap the
// cause; rejections decode the backend's error body.
func fail(resp *resty.Response, err error, op string) error {
	if err != nil {
		return errors.Wrapf(err, "%s: transport failure", op)
	}
	var be BackendError
	if jsonErr := json.Unmarshal(resp.Body(), &be); jsonErr != nil || be.Code == 0 {
		be = BackendError{Code: resp.StatusCode(), Type: "unknown", Message: string(resp.Body())}
	}
	return &be
}

// ListDocuments fetches documents from a collection, honoring the given
// queries.
func (c *DocumentClient) ListDocuments(ctx context.Context, collectionID string, queries ...string) (*DocumentList, error) {
	var list DocumentList
	req := c.httpClient.R().SetContext(ctx).SetResult(&list)
	if len(queries) > 0 {
		req.SetQueryParamsFromValues(url.Values{"queries[]": queries})
	}
	resp, err := req.Get(c.documentsPath(collectionID))
	if err != nil || resp.IsError() {
		return nil, fail(resp, err, "list documents")
	}
	return &list, nil
}

// GetDocument fetches a single document by id.
func (c *DocumentClient) GetDocument(ctx context.Context, collectionID, documentID string) (json.RawMessage, error) {
	resp, err := c.httpClient.R().SetContext(ctx).Get(c.documentPath(collectionID, documentID))
	if err != nil || resp.IsError() {
		return nil, fail(resp, err, "get document")
	}
	return json.RawMessage(resp.Body()), nil
}

// CreateDocument creates a document with a backend-assigned id.
func (c *DocumentClient) CreateDocument(ctx context.Context, collectionID string, data map[string]any) (json.RawMessage, error) {
	body := map[string]any{
		"documentId": "unique()",
		"data":       data,
	}
	resp, err := c.httpClient.R().SetContext(ctx).SetBody(body).Post(c.documentsPath(collectionID))
	if err != nil || resp.IsError() {
		return nil, fail(resp, err, "create document")
	}
	return json.RawMessage(resp.Body()), nil
}

// UpdateDocument patches the given attributes on a document. Attributes absent
// from data are left untouched on the stored record.
func (c *DocumentClient) UpdateDocument(ctx context.Context, collectionID, documentID string, data map[string]any) (json.RawMessage, error) {
	body := map[string]any{"data": data}
	resp, err := c.httpClient.R().SetContext(ctx).SetBody(body).Patch(c.documentPath(collectionID, documentID))
	if err != nil || resp.IsError() {
		return nil, fail(resp, err, "update document")
	}
	return json.RawMessage(resp.Body()), nil
}

// DeleteDocument removes a document by id.
func (c *DocumentClient) DeleteDocument(ctx context.Context, collectionID, documentID string) error {
	resp, err := c.httpClient.R().SetContext(ctx).Delete(c.documentPath(collectionID, documentID))
	if err != nil || resp.IsError() {
		return fail(resp, err, "delete document")
	}
	return nil
}
