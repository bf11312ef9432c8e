package bookings

import (
	"context"
	"log"
	"net/http"
	"time"

	"cinebook/models"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type monthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// GET /api/booking/revenue
func (h *Handlers) Revenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	now := time.Now()

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // treat Sunday as the end of the week
	}
	startOfWeek := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
	endOfWeek := startOfWeek.AddDate(0, 0, 7).Add(-time.Nanosecond)

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)

	total, err := h.sumRevenue(ctx, bson.M{"order_status": models.OrderStatusOrdered})
	if err != nil {
		h.revenueError(w, err)
		return
	}
	monthly, err := h.sumRevenueBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		h.revenueError(w, err)
		return
	}
	weekly, err := h.sumRevenueBetween(ctx, startOfWeek, endOfWeek)
	if err != nil {
		h.revenueError(w, err)
		return
	}
	daily, err := h.sumRevenueBetween(ctx, startOfDay, endOfDay)
	if err != nil {
		h.revenueError(w, err)
		return
	}
	series, err := h.monthlySeries(ctx, now)
	if err != nil {
		h.revenueError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalRevenue":       total,
		"monthlyRevenue":     monthly,
		"weeklyRevenue":      weekly,
		"dailyRevenue":       daily,
		"monthlyRevenueData": series,
	})
}

func (h *Handlers) revenueError(w http.ResponseWriter, err error) {
	log.Printf("Error aggregating revenue: %v", err)
	utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch revenue data")
}

func (h *Handlers) sumRevenue(ctx context.Context, match bson.M) (float64, error) {
	cur, err := h.Store.Bookings.Aggregate(ctx, []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total_price"}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Revenue, nil
}

func (h *Handlers) sumRevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return h.sumRevenue(ctx, bson.M{
		"order_status": models.OrderStatusOrdered,
		"booking_time": bson.M{"$gte": from, "$lte": to},
	})
}

// monthlySeries returns revenue per month for the last six months,
// including zero months, oldest first.
func (h *Handlers) monthlySeries(ctx context.Context, now time.Time) ([]monthRevenue, error) {
	sixMonthsAgo := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)

	cur, err := h.Store.Bookings.Aggregate(ctx, []bson.M{
		{"$match": bson.M{
			"order_status": models.OrderStatusOrdered,
			"booking_time": bson.M{"$gte": sixMonthsAgo},
		}},
		{"$group": bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$booking_time"},
				"month": bson.M{"$month": "$booking_time"},
			},
			"revenue": bson.M{"$sum": "$total_price"},
		}},
		{"$sort": bson.M{"_id.year": 1, "_id.month": 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var grouped []struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &grouped); err != nil {
		return nil, err
	}

	byMonth := make(map[[2]int]float64, len(grouped))
	for _, g := range grouped {
		byMonth[[2]int{g.ID.Year, g.ID.Month}] = g.Revenue
	}

	series := make([]monthRevenue, 0, 6)
	for m := sixMonthsAgo; !m.After(now); m = m.AddDate(0, 1, 0) {
		series = append(series, monthRevenue{
			Month:   monthNames[int(m.Month())-1],
			Revenue: byMonth[[2]int{m.Year(), int(m.Month())}],
		})
	}
	return series, nil
}
