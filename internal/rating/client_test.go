package rating

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRating_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ratings", r.URL.Path)

		var req CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Rating{
			ID:      uuid.New(),
			EventID: req.EventID,
			UserID:  req.UserID,
			Score:   req.Score,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	rating, err := client.CreateRating(context.Background(), CreateRequest{
		EventID: uuid.New(),
		UserID:  uuid.New(),
		Score:   4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Score)
}

func TestCreateRating_ConflictMapsToAlreadyRated(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusConflict} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(srv.URL, time.Second)
		_, err := client.CreateRating(context.Background(), CreateRequest{})
		assert.ErrorIs(t, err, ErrAlreadyRated)

		srv.Close()
	}
}

func TestSummaryForEvent(t *testing.T) {
	eventID := uuid.New()
	avg := 4.5

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ratings/event/"+eventID.String(), r.URL.Path)
		_ = json.NewEncoder(w).Encode(Summary{
			EventID:      eventID,
			AverageScore: &avg,
			TotalRatings: 2,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	summary, err := client.SummaryForEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalRatings)
	assert.Equal(t, 4.5, *summary.AverageScore)
}

func TestSummaryForEvent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.SummaryForEvent(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestHasUserRated(t *testing.T) {
	eventID, userID := uuid.New(), uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ratings/event/"+eventID.String()+"/user/"+userID.String(), r.URL.Path)
		_ = json.NewEncoder(w).Encode(true)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	rated, err := client.HasUserRated(context.Background(), eventID, userID)
	require.NoError(t, err)
	assert.True(t, rated)
}
