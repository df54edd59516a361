// Package ledger is the HTTP client for the upstream group-expense ledger
// API: the service that owns persistence, recomputes group balances and runs
// the minimum-transaction settlement optimization. This layer only fetches
// snapshots and posts records; it never recomputes what the ledger owns.
package ledger

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"splitsight-bff/models"
)

// Client talks to the ledger API on behalf of one request's bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *SnapshotCache
}

// NewClient builds a ledger client. cache may be nil.
func NewClient(baseURL string, cache *SnapshotCache) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache: cache,
	}
}

// Wire shapes. The ledger serializes amounts as JSON numbers (doubles), so
// these stay float64 here and are converted to fixed-point Money at the edge
// of this package.

type groupDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type balanceDTO struct {
	UserID  string  `json:"userId"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	IsGuest bool    `json:"isGuest"`
}

type balancesResponse struct {
	Currency string       `json:"currency"`
	Balances []balanceDTO `json:"balances"`
}

type simplifiedDTO struct {
	From     string  `json:"from"`
	FromName string  `json:"fromName"`
	To       string  `json:"to"`
	ToName   string  `json:"toName"`
	Amount   float64 `json:"amount"`
}

type simplifiedResponse struct {
	SimplifiedSettlements []simplifiedDTO `json:"simplifiedSettlements"`
}

type friendGroupBalanceDTO struct {
	GroupID   string  `json:"groupId"`
	GroupName string  `json:"groupName"`
	Currency  string  `json:"currency"`
	Balance   float64 `json:"balance"`
}

type friendWithBalanceDTO struct {
	FriendID       string                  `json:"friendId"`
	FriendName     string                  `json:"friendName"`
	GroupBreakdown []friendGroupBalanceDTO `json:"groupBreakdown"`
}

type friendSettlementResultDTO struct {
	Settlements []struct {
		GroupID      string  `json:"groupId"`
		GroupName    string  `json:"groupName"`
		SettlementID string  `json:"settlementId"`
		Amount       float64 `json:"amount"`
	} `json:"settlements"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) request(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger api unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var apiErr apiError
		if json.NewDecoder(res.Body).Decode(&apiErr) == nil && (apiErr.Error != "" || apiErr.Message != "") {
			msg := apiErr.Error
			if msg == "" {
				msg = apiErr.Message
			}
			return fmt.Errorf("ledger api %s %s: %s", method, path, msg)
		}
		return fmt.Errorf("ledger api %s %s: HTTP %d", method, path, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode ledger response: %w", err)
	}
	return nil
}

// cacheKey scopes a snapshot to the calling user's token so one user's cache
// never leaks into another's.
func cacheKey(token, kind, id string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("splitsight:%s:%s:%s", hex.EncodeToString(sum[:8]), kind, id)
}

// Groups lists the caller's groups.
func (c *Client) Groups(ctx context.Context, token string) ([]models.GroupRef, error) {
	var raw []groupDTO
	key := cacheKey(token, "groups", "all")
	if !c.cache.Get(ctx, key, &raw) {
		if err := c.request(ctx, token, http.MethodGet, "/groups", nil, &raw); err != nil {
			return nil, err
		}
		c.cache.Set(ctx, key, raw)
	}

	groups := make([]models.GroupRef, 0, len(raw))
	for _, g := range raw {
		id, err := uuid.Parse(g.ID)
		if err != nil {
			return nil, fmt.Errorf("ledger returned invalid group id %q: %w", g.ID, err)
		}
		groups = append(groups, models.GroupRef{ID: id, Name: g.Name, Currency: g.Currency})
	}
	return groups, nil
}

// GroupBalances fetches one group's balance snapshot. Wire doubles are
// quantized to cents here, with sub-cent noise collapsed to zero.
func (c *Client) GroupBalances(ctx context.Context, token string, group models.GroupRef) (models.GroupBalances, error) {
	var raw balancesResponse
	key := cacheKey(token, "balances", group.ID.String())
	if !c.cache.Get(ctx, key, &raw) {
		path := fmt.Sprintf("/expenses/group/%s/balances", group.ID)
		if err := c.request(ctx, token, http.MethodGet, path, nil, &raw); err != nil {
			return models.GroupBalances{}, err
		}
		c.cache.Set(ctx, key, raw)
	}

	currency := raw.Currency
	if currency == "" {
		currency = group.Currency
	}

	snapshot := models.GroupBalances{Group: group}
	snapshot.Group.Currency = currency
	for _, b := range raw.Balances {
		id, err := uuid.Parse(b.UserID)
		if err != nil {
			return models.GroupBalances{}, fmt.Errorf("ledger returned invalid user id %q: %w", b.UserID, err)
		}
		snapshot.Balances = append(snapshot.Balances, models.Balance{
			Participant: models.Participant{UserID: id, Name: b.Name, IsGuest: b.IsGuest},
			Amount:      models.MoneyFromFloat(b.Balance, currency),
		})
	}
	return snapshot, nil
}

// AllGroupBalances fetches every group's balance snapshot concurrently.
func (c *Client) AllGroupBalances(ctx context.Context, token string) ([]models.GroupBalances, error) {
	groups, err := c.Groups(ctx, token)
	if err != nil {
		return nil, err
	}

	snapshots := make([]models.GroupBalances, len(groups))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			snapshot, err := c.GroupBalances(ctx, token, group)
			if err != nil {
				return err
			}
			snapshots[i] = snapshot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// SimplifiedSettlements fetches the minimum-transaction debt graph the
// ledger computed for a group.
func (c *Client) SimplifiedSettlements(ctx context.Context, token string, group models.GroupRef) ([]models.SimplifiedSettlement, error) {
	var raw simplifiedResponse
	key := cacheKey(token, "simplified", group.ID.String())
	if !c.cache.Get(ctx, key, &raw) {
		path := fmt.Sprintf("/settlements/group/%s/simplified", group.ID)
		if err := c.request(ctx, token, http.MethodGet, path, nil, &raw); err != nil {
			return nil, err
		}
		c.cache.Set(ctx, key, raw)
	}

	edges := make([]models.SimplifiedSettlement, 0, len(raw.SimplifiedSettlements))
	for _, s := range raw.SimplifiedSettlements {
		from, err := uuid.Parse(s.From)
		if err != nil {
			return nil, fmt.Errorf("ledger returned invalid user id %q: %w", s.From, err)
		}
		to, err := uuid.Parse(s.To)
		if err != nil {
			return nil, fmt.Errorf("ledger returned invalid user id %q: %w", s.To, err)
		}
		edges = append(edges, models.SimplifiedSettlement{
			From:   models.Participant{UserID: from, Name: s.FromName},
			To:     models.Participant{UserID: to, Name: s.ToName},
			Amount: models.MoneyFromFloat(s.Amount, group.Currency),
		})
	}
	return edges, nil
}

// FriendBalances fetches the server-aggregated friend balances. The per-
// currency totals are rebuilt from the per-group breakdown with the same
// fixed-point summation the client-side aggregator uses, so the two code
// paths agree on tolerance and currency segregation.
func (c *Client) FriendBalances(ctx context.Context, token string) ([]models.FriendBalance, error) {
	var raw []friendWithBalanceDTO
	key := cacheKey(token, "friends", "balances")
	if !c.cache.Get(ctx, key, &raw) {
		if err := c.request(ctx, token, http.MethodGet, "/friends/balances", nil, &raw); err != nil {
			return nil, err
		}
		c.cache.Set(ctx, key, raw)
	}

	friends := make([]models.FriendBalance, 0, len(raw))
	for _, f := range raw {
		id, err := uuid.Parse(f.FriendID)
		if err != nil {
			return nil, fmt.Errorf("ledger returned invalid friend id %q: %w", f.FriendID, err)
		}

		friend := models.FriendBalance{
			Friend: models.Participant{UserID: id, Name: f.FriendName},
		}
		perCurrency := make(map[string]models.Money)
		var currencies []string
		for _, row := range f.GroupBreakdown {
			groupID, err := uuid.Parse(row.GroupID)
			if err != nil {
				return nil, fmt.Errorf("ledger returned invalid group id %q: %w", row.GroupID, err)
			}
			amount := models.MoneyFromFloat(row.Balance, row.Currency)
			friend.PerGroup = append(friend.PerGroup, models.GroupAmount{
				Group:  models.GroupRef{ID: groupID, Name: row.GroupName, Currency: row.Currency},
				Amount: amount,
			})

			running, ok := perCurrency[row.Currency]
			if !ok {
				running = models.NewMoney(0, row.Currency)
				currencies = append(currencies, row.Currency)
			}
			running, err = running.Add(amount)
			if err != nil {
				return nil, err
			}
			perCurrency[row.Currency] = running
		}

		friend.Settled = true
		for _, currency := range currencies {
			amount := perCurrency[currency]
			if !amount.IsZero() {
				friend.Settled = false
			}
			friend.PerCurrency = append(friend.PerCurrency, models.CurrencyAmount{Currency: currency, Amount: amount})
		}
		friends = append(friends, friend)
	}
	return friends, nil
}

// CreateExpense posts a new expense with its computed splits.
func (c *Client) CreateExpense(ctx context.Context, token string, payload any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.request(ctx, token, http.MethodPost, "/expenses", payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordSettlement posts a confirmed settlement draft.
func (c *Client) RecordSettlement(ctx context.Context, token string, payload any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.request(ctx, token, http.MethodPost, "/settlements", payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SettleFriend records one settlement per shared group with the friend.
func (c *Client) SettleFriend(ctx context.Context, token string, friendID uuid.UUID, amount models.Money, note string) (models.FriendSettlementResult, error) {
	payload := map[string]any{
		"amount":   amount.Float(),
		"currency": amount.Currency,
	}
	if note != "" {
		payload["note"] = note
	}

	var raw friendSettlementResultDTO
	path := fmt.Sprintf("/friends/%s/settle", friendID)
	if err := c.request(ctx, token, http.MethodPost, path, payload, &raw); err != nil {
		return models.FriendSettlementResult{}, err
	}

	result := models.FriendSettlementResult{}
	for _, s := range raw.Settlements {
		groupID, err := uuid.Parse(s.GroupID)
		if err != nil {
			return models.FriendSettlementResult{}, fmt.Errorf("ledger returned invalid group id %q: %w", s.GroupID, err)
		}
		result.Settlements = append(result.Settlements, models.FriendGroupSettlement{
			Group:        models.GroupRef{ID: groupID, Name: s.GroupName},
			SettlementID: s.SettlementID,
			Amount:       models.MoneyFromFloat(s.Amount, amount.Currency),
		})
	}
	return result, nil
}
