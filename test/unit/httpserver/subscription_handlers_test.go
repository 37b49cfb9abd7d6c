package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/feathermail/newsletter-service/internal/application/services"
	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
	"github.com/feathermail/newsletter-service/internal/core/ports"
	"github.com/feathermail/newsletter-service/internal/infrastructure/httpserver"
	tmocks "github.com/feathermail/newsletter-service/test/mocks"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeSubscriptionRepo is an in-memory repository so the handler tests can
// observe what a request left behind.
type fakeSubscriptionRepo struct {
	mu          sync.Mutex
	subscribers map[uuid.UUID]*subscription.Subscriber
	tokens      map[string]uuid.UUID
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		subscribers: make(map[uuid.UUID]*subscription.Subscriber),
		tokens:      make(map[string]uuid.UUID),
	}
}

func (f *fakeSubscriptionRepo) CreatePendingSubscription(ctx context.Context, sub *subscription.NewSubscriber, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.subscribers[id] = &subscription.Subscriber{
		ID:     id,
		Name:   sub.Name.String(),
		Email:  sub.Email.String(),
		Status: subscription.StatusPendingVerification,
	}
	f.tokens[token] = id
	return id, nil
}

func (f *fakeSubscriptionRepo) FindSubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, &subscription.NotFoundError{Token: token}
	}
	return id, nil
}

func (f *fakeSubscriptionRepo) MarkConfirmed(ctx context.Context, subscriberID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sub, ok := f.subscribers[subscriberID]; ok {
		sub.Status = subscription.StatusConfirmed
	}
	return nil
}

func newTestServer(t *testing.T, repo ports.SubscriptionRepository, emailClient ports.EmailClient) *httpserver.Server {
	t.Helper()

	logger := logrus.New()
	svc := services.NewSubscriptionService(repo, emailClient, "https://newsletter.example.com", logger)

	return httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}, logger, httpserver.ServerDeps{
		SubscriptionService: svc,
	})
}

func postSubscribeForm(server *httpserver.Server, name, email string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("name", name)
	form.Set("email", email)

	req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)
	return rec
}

func getConfirm(server *httpserver.Server, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/subscriptions/confirm?token="+url.QueryEscape(token), nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)
	return rec
}

func soleSubscriber(t *testing.T, repo *fakeSubscriptionRepo) *subscription.Subscriber {
	t.Helper()
	require.Len(t, repo.subscribers, 1)
	for _, sub := range repo.subscribers {
		return sub
	}
	return nil
}

func TestSubscribe_ValidForm(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	server := newTestServer(t, repo, &tmocks.EmailClientMock{})

	rec := postSubscribeForm(server, "le guin", "ursula_le_guin@gmail.com")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())

	sub := soleSubscriber(t, repo)
	require.Equal(t, "le guin", sub.Name)
	require.Equal(t, "ursula_le_guin@gmail.com", sub.Email)
	require.Equal(t, subscription.StatusPendingVerification, sub.Status)

	// Exactly one token row referencing the subscriber.
	require.Len(t, repo.tokens, 1)
	for _, id := range repo.tokens {
		require.Equal(t, sub.ID, id)
	}
}

func TestSubscribe_EmptyName(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	server := newTestServer(t, repo, &tmocks.EmailClientMock{})

	rec := postSubscribeForm(server, "", "ursula_le_guin@gmail.com")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Empty(t, repo.subscribers)
	require.Empty(t, repo.tokens)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	server := newTestServer(t, repo, &tmocks.EmailClientMock{})

	rec := postSubscribeForm(server, "le guin", "not-an-email")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, repo.subscribers)
}

func TestSubscribe_DispatchFailureLeavesCommittedRows(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	emailClient := &tmocks.EmailClientMock{
		SendFn: func(ctx context.Context, recipient subscription.Email, subject, htmlBody, textBody string) error {
			return &subscription.DispatchError{Err: errors.New("provider returned status 500")}
		},
	}
	server := newTestServer(t, repo, emailClient)

	rec := postSubscribeForm(server, "le guin", "ursula_le_guin@gmail.com")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, rec.Body.String())

	// The commit preceded the dispatch attempt; both rows stand unchanged.
	sub := soleSubscriber(t, repo)
	require.Equal(t, subscription.StatusPendingVerification, sub.Status)
	require.Len(t, repo.tokens, 1)
}

func TestSubscribe_PersistenceFailure(t *testing.T) {
	repo := &tmocks.SubscriptionRepositoryMock{
		CreatePendingSubscriptionFn: func(ctx context.Context, sub *subscription.NewSubscriber, token string) (uuid.UUID, error) {
			return uuid.Nil, &subscription.PersistenceError{Err: errors.New("connection reset")}
		},
	}
	server := newTestServer(t, repo, &tmocks.EmailClientMock{})

	rec := postSubscribeForm(server, "le guin", "ursula_le_guin@gmail.com")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestConfirm_WithIssuedToken(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	server := newTestServer(t, repo, &tmocks.EmailClientMock{})

	rec := postSubscribeForm(server, "le guin", "ursula_le_guin@gmail.com")
	require.Equal(t, http.StatusOK, rec.Code)

	var issuedToken string
	for token := range repo.tokens {
		issuedToken = token
	}
	require.NotEmpty(t, issuedToken)

	rec = getConfirm(server, issuedToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())

	sub := soleSubscriber(t, repo)
	require.Equal(t, subscription.StatusConfirmed, sub.Status)
}

func TestConfirm_UnknownToken(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	server := newTestServer(t, repo, &tmocks.EmailClientMock{})

	rec := getConfirm(server, "doesnotexist")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, rec.Body.String())
	for _, sub := range repo.subscribers {
		require.Equal(t, subscription.StatusPendingVerification, sub.Status)
	}
}

func TestConfirm_ReconfirmingStaysOK(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	server := newTestServer(t, repo, &tmocks.EmailClientMock{})

	postSubscribeForm(server, "le guin", "ursula_le_guin@gmail.com")

	var issuedToken string
	for token := range repo.tokens {
		issuedToken = token
	}

	require.Equal(t, http.StatusOK, getConfirm(server, issuedToken).Code)
	require.Equal(t, http.StatusOK, getConfirm(server, issuedToken).Code)

	sub := soleSubscriber(t, repo)
	require.Equal(t, subscription.StatusConfirmed, sub.Status)
}

func TestCrossOriginPreflight(t *testing.T) {
	server := newTestServer(t, newFakeSubscriptionRepo(), &tmocks.EmailClientMock{})

	req := httptest.NewRequest(http.MethodOptions, "/subscriptions", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

// newMockServiceServer wires the routes over a service mock so the HTTP layer
// can be exercised without the real workflow behind it.
func newMockServiceServer(t *testing.T, svc ports.SubscriptionService) *httpserver.Server {
	t.Helper()
	return httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}, logrus.New(), httpserver.ServerDeps{
		SubscriptionService: svc,
	})
}

func TestSubscribe_HandlerForwardsRawFormFields(t *testing.T) {
	var gotName, gotEmail string
	svc := &tmocks.SubscriptionServiceMock{
		SubscribeFn: func(ctx context.Context, rawName, rawEmail string) error {
			gotName, gotEmail = rawName, rawEmail
			return nil
		},
	}
	server := newMockServiceServer(t, svc)

	// The handler hands the form fields over untouched; trimming and
	// validation belong to the workflow.
	rec := postSubscribeForm(server, "  le guin  ", "ursula_le_guin@gmail.com")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "  le guin  ", gotName)
	require.Equal(t, "ursula_le_guin@gmail.com", gotEmail)
}

func TestConfirm_HandlerForwardsToken(t *testing.T) {
	var gotToken string
	svc := &tmocks.SubscriptionServiceMock{
		ConfirmFn: func(ctx context.Context, token string) error {
			gotToken = token
			return nil
		},
	}
	server := newMockServiceServer(t, svc)

	rec := getConfirm(server, "a1B2c3d4e5F6g7h8i9J0k1l2m")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a1B2c3d4e5F6g7h8i9J0k1l2m", gotToken)
}

func TestPublishNewsletter_Stubbed(t *testing.T) {
	server := newTestServer(t, newFakeSubscriptionRepo(), &tmocks.EmailClientMock{})

	body := `{"title":"Issue 1","content":{"html":"<p>hi</p>","text":"hi"}}`
	req := httptest.NewRequest(http.MethodPost, "/newsletters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}
