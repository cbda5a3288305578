// internal/clients/enrollment_client.go
package clients

import (
	"context"
	"net/http"

	"fitnexus/internal/enrollment"
)

type EnrollmentClient struct {
	base
}

func NewEnrollmentClient(baseURL string, httpClient *http.Client) *EnrollmentClient {
	return &EnrollmentClient{base: newBase(baseURL, httpClient)}
}

// EnrollmentRequest names a member and a session.
type EnrollmentRequest struct {
	ClassType  string `json:"class_type"`
	Instructor string `json:"instructor"`
	Location   string `json:"location"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DOB        string `json:"dob"`
}

func (c *EnrollmentClient) CheckIn(ctx context.Context, req EnrollmentRequest) (*enrollment.Outcome, error) {
	return c.post(ctx, "/enrollments/check-in", req)
}

func (c *EnrollmentClient) CheckOut(ctx context.Context, req EnrollmentRequest) (*enrollment.Outcome, error) {
	return c.post(ctx, "/enrollments/check-out", req)
}

func (c *EnrollmentClient) CheckInGuest(ctx context.Context, req EnrollmentRequest) (*enrollment.Outcome, error) {
	return c.post(ctx, "/enrollments/guest-check-in", req)
}

func (c *EnrollmentClient) CheckOutGuest(ctx context.Context, req EnrollmentRequest) (*enrollment.Outcome, error) {
	return c.post(ctx, "/enrollments/guest-check-out", req)
}

func (c *EnrollmentClient) post(ctx context.Context, path string, req EnrollmentRequest) (*enrollment.Outcome, error) {
	var outcome enrollment.Outcome
	if err := c.do(ctx, http.MethodPost, path, nil, req, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}
