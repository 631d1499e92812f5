package googlecal

import (
	"context"
	"fmt"
	"time"

	caldomain "healthdiary-backend/internal/calendar/domain"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is invoked whenever the underlying OAuth client silently
// mints a new access token (and possibly rotates the refresh token). The
// caller is responsible for persisting the updated credential immediately so
// it stays valid for subsequent requests.
type TokenUpdateFunc func(token *oauth2.Token) error

// Credentials is a stored credential set for one user.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Expiry       *time.Time
}

type Service struct {
	clientID     string
	clientSecret string
	redirectURI  string
	loc          *time.Location
	log          zerolog.Logger
}

// notifyTokenSource wraps an oauth2.TokenSource and fires a callback when the
// access token changes, so silent refreshes become visible to the caller.
type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
	log      zerolog.Logger
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			s.log.Error().Err(err).Msg("failed to persist refreshed token")
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret, redirectURI string, loc *time.Location, log zerolog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		loc:          loc,
		log:          log.With().Str("component", "googlecal").Logger(),
	}
}

func (s *Service) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		RedirectURL:  s.redirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarReadonlyScope},
	}
}

// AuthCodeURL builds the consent screen URL. Offline access plus a forced
// consent prompt so Google reliably issues a refresh token.
func (s *Service) AuthCodeURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for a token set.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
	}
	return token, nil
}

// calendarService creates a Calendar API client from the user's stored
// credentials, wrapping the token source so refreshes reach onTokenRefresh.
func (s *Service) calendarService(ctx context.Context, creds Credentials, onTokenRefresh TokenUpdateFunc) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}
	if creds.Expiry != nil {
		token.Expiry = *creds.Expiry
	}

	tokenSource := s.oauthConfig().TokenSource(ctx, token)

	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: onTokenRefresh,
		log:      s.log,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}

	return srv, nil
}

// ListDay lists the primary calendar's events inside [dayStart, dayEnd],
// with recurring events expanded into instances, ordered by start time.
func (s *Service) ListDay(ctx context.Context, creds Credentials, dayStart, dayEnd time.Time, onTokenRefresh TokenUpdateFunc) ([]caldomain.CalendarEvent, error) {
	srv, err := s.calendarService(ctx, creds, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Events.List("primary").
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list calendar events: %v", err)
	}

	events := make([]caldomain.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev, convErr := s.convertEvent(item)
		if convErr != nil {
			s.log.Warn().Err(convErr).Str("event_id", item.Id).Msg("skipping unparsable event")
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

// convertEvent normalizes a remote event. A date-only start marks an all-day
// event; its boundaries are anchored at midnight in the display zone. Events
// without a title get the "Busy" placeholder (private events come back with
// an empty summary).
func (s *Service) convertEvent(item *calendar.Event) (caldomain.CalendarEvent, error) {
	var ev caldomain.CalendarEvent

	if item.Start == nil || item.End == nil {
		return ev, fmt.Errorf("event %s has no start or end", item.Id)
	}

	allDay := item.Start.Date != ""

	start, err := parseEventTime(item.Start, s.loc)
	if err != nil {
		return ev, err
	}
	end, err := parseEventTime(item.End, s.loc)
	if err != nil {
		return ev, err
	}

	title := item.Summary
	if title == "" {
		title = "Busy"
	}

	ev = caldomain.CalendarEvent{
		Title:    title,
		Start:    start,
		End:      end,
		Location: item.Location,
		AllDay:   allDay,
	}
	return ev, nil
}

func parseEventTime(edt *calendar.EventDateTime, loc *time.Location) (time.Time, error) {
	if edt.DateTime != "" {
		return time.Parse(time.RFC3339, edt.DateTime)
	}
	return time.ParseInLocation("2006-01-02", edt.Date, loc)
}
