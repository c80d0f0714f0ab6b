package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/clinicware/doctor-portal-api/internal/db"
	"github.com/clinicware/doctor-portal-api/internal/models"
)

type stubCache struct {
	payload []byte
	sets    map[string][]byte
}

func (s *stubCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.payload != nil {
		return s.payload, true, nil
	}
	return nil, false, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.sets == nil {
		s.sets = make(map[string][]byte)
	}
	s.sets[key] = value
	return nil
}

func (s *stubCache) Delete(ctx context.Context, key string) error {
	return nil
}

func newAvailableRouter(cols *db.Collections, store *stubCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Cols:  cols,
		Cache: store,
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	r := gin.New()
	r.GET("/available", h.GetAvailable)
	return r
}

func TestGetAvailableRequiresDate(t *testing.T) {
	r := newAvailableRouter(nil, &stubCache{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/available", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetAvailableCacheHitMatchesFreshHeaders(t *testing.T) {
	cached := []byte(`[{"name":"Dental","slots":["9am"]}]`)
	r := newAvailableRouter(nil, &stubCache{payload: cached})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/available?date=2024-01-01", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeJSON {
		t.Fatalf("expected %q, got %q", contentTypeJSON, ct)
	}
	if w.Body.String() != string(cached) {
		t.Fatalf("cached payload altered: %s", w.Body.String())
	}
}

func TestGetAvailableComputesOpenSlots(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	mt.Run("booked slot removed", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "doctor_portal.appointments", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "name", Value: "Dental"},
				{Key: "slots", Value: bson.A{"9am", "10am", "11am"}},
			}),
			mtest.CreateCursorResponse(0, bookingNS, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "bookingName", Value: "Dental"},
				{Key: "patientName", Value: "Alice"},
				{Key: "date", Value: "2024-01-01"},
				{Key: "time", Value: "10am"},
			}),
		)

		store := &stubCache{}
		r := newAvailableRouter(&db.Collections{Appointments: mt.Coll, Bookings: mt.Coll}, store)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/available?date=2024-01-01", nil))
		if w.Code != http.StatusOK {
			mt.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != contentTypeJSON {
			mt.Fatalf("expected %q, got %q", contentTypeJSON, ct)
		}

		var got []models.AppointmentType
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			mt.Fatalf("decode response: %v", err)
		}
		if len(got) != 1 {
			mt.Fatalf("expected 1 appointment type, got %d", len(got))
		}
		want := []string{"9am", "11am"}
		if !reflect.DeepEqual(got[0].Slots, want) {
			mt.Fatalf("expected open slots %v, got %v", want, got[0].Slots)
		}

		stored, ok := store.sets["available:2024-01-01"]
		if !ok {
			mt.Fatal("expected the computed payload to be cached under its date key")
		}
		if w.Body.String() != string(stored) {
			mt.Fatal("cached payload differs from the served response")
		}
	})
}
