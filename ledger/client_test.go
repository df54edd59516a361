package ledger

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitsight-bff/models"
)

const testToken = "test-token"

func testServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, body)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGroups(t *testing.T) {
	groupID := uuid.New()
	srv := testServer(t, map[string]string{
		"/groups": fmt.Sprintf(`[{"id":%q,"name":"Trip","currency":"USD"}]`, groupID),
	})

	client := NewClient(srv.URL, nil)
	groups, err := client.Groups(context.Background(), testToken)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, groupID, groups[0].ID)
	assert.Equal(t, "Trip", groups[0].Name)
	assert.Equal(t, "USD", groups[0].Currency)
}

func TestGroupBalancesQuantizesWireFloats(t *testing.T) {
	group := models.GroupRef{ID: uuid.New(), Name: "Trip", Currency: "USD"}
	samID := uuid.New()
	kimID := uuid.New()

	// Upstream computes with doubles; 0.009 is accumulated float noise and
	// must arrive here as a settled zero.
	srv := testServer(t, map[string]string{
		fmt.Sprintf("/expenses/group/%s/balances", group.ID): fmt.Sprintf(
			`{"currency":"USD","balances":[
				{"userId":%q,"name":"Sam","balance":20.5},
				{"userId":%q,"name":"Kim","balance":0.009}
			]}`, samID, kimID),
	})

	client := NewClient(srv.URL, nil)
	snapshot, err := client.GroupBalances(context.Background(), testToken, group)
	require.NoError(t, err)
	require.Len(t, snapshot.Balances, 2)

	assert.Equal(t, samID, snapshot.Balances[0].Participant.UserID)
	assert.Equal(t, int64(2050), snapshot.Balances[0].Amount.Cents())

	assert.Equal(t, kimID, snapshot.Balances[1].Participant.UserID)
	assert.True(t, snapshot.Balances[1].Amount.IsZero())
}

func TestSimplifiedSettlements(t *testing.T) {
	group := models.GroupRef{ID: uuid.New(), Name: "Trip", Currency: "EUR"}
	fromID := uuid.New()
	toID := uuid.New()

	srv := testServer(t, map[string]string{
		fmt.Sprintf("/settlements/group/%s/simplified", group.ID): fmt.Sprintf(
			`{"simplifiedSettlements":[
				{"from":%q,"fromName":"Sam","to":%q,"toName":"Kim","amount":12.5}
			]}`, fromID, toID),
	})

	client := NewClient(srv.URL, nil)
	edges, err := client.SimplifiedSettlements(context.Background(), testToken, group)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, fromID, edges[0].From.UserID)
	assert.Equal(t, "Sam", edges[0].From.Name)
	assert.Equal(t, toID, edges[0].To.UserID)
	assert.Equal(t, int64(1250), edges[0].Amount.Cents())
	assert.Equal(t, "EUR", edges[0].Amount.Currency)
}

func TestFriendBalancesRebuildsPerCurrencyTotals(t *testing.T) {
	friendID := uuid.New()
	tripID := uuid.New()
	flatID := uuid.New()
	dinnerID := uuid.New()

	srv := testServer(t, map[string]string{
		"/friends/balances": fmt.Sprintf(
			`[{"friendId":%q,"friendName":"Sam","groupBreakdown":[
				{"groupId":%q,"groupName":"Trip","currency":"USD","balance":12.5},
				{"groupId":%q,"groupName":"Dinner","currency":"USD","balance":-2.5},
				{"groupId":%q,"groupName":"Flat","currency":"EUR","balance":-5}
			]}]`, friendID, tripID, dinnerID, flatID),
	})

	client := NewClient(srv.URL, nil)
	friends, err := client.FriendBalances(context.Background(), testToken)
	require.NoError(t, err)
	require.Len(t, friends, 1)

	fb := friends[0]
	assert.Equal(t, friendID, fb.Friend.UserID)
	assert.False(t, fb.Settled)
	require.Len(t, fb.PerGroup, 3)

	// Totals per currency, first-seen order, never combined across currencies.
	require.Len(t, fb.PerCurrency, 2)
	assert.Equal(t, "USD", fb.PerCurrency[0].Currency)
	assert.Equal(t, int64(1000), fb.PerCurrency[0].Amount.Cents())
	assert.Equal(t, "EUR", fb.PerCurrency[1].Currency)
	assert.Equal(t, int64(-500), fb.PerCurrency[1].Amount.Cents())
}

func TestFriendBalancesSettledFriend(t *testing.T) {
	friendID := uuid.New()
	tripID := uuid.New()

	srv := testServer(t, map[string]string{
		"/friends/balances": fmt.Sprintf(
			`[{"friendId":%q,"friendName":"Sam","groupBreakdown":[
				{"groupId":%q,"groupName":"Trip","currency":"USD","balance":0.004}
			]}]`, friendID, tripID),
	})

	client := NewClient(srv.URL, nil)
	friends, err := client.FriendBalances(context.Background(), testToken)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.True(t, friends[0].Settled)
}

func TestRequestSurfacesAPIErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/groups", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":"not a member of this group"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil)
	_, err := client.Groups(context.Background(), testToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a member of this group")
}

func TestSettleFriend(t *testing.T) {
	friendID := uuid.New()
	tripID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("/friends/%s/settle", friendID), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"settlements":[{"groupId":%q,"groupName":"Trip","settlementId":"s-1","amount":20}]}`, tripID)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil)
	result, err := client.SettleFriend(context.Background(), testToken, friendID, models.NewMoney(2000, "USD"), "thanks")
	require.NoError(t, err)
	require.Len(t, result.Settlements, 1)
	assert.Equal(t, tripID, result.Settlements[0].Group.ID)
	assert.Equal(t, "s-1", result.Settlements[0].SettlementID)
	assert.Equal(t, int64(2000), result.Settlements[0].Amount.Cents())
}
