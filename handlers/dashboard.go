package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/store"
)

// DashboardHandler aggregates per-resource counts for the admin landing page.
type DashboardHandler struct {
	posts        store.PostStore
	projects     store.ProjectStore
	testimonials store.TestimonialStore
	contacts     store.ContactStore
	subscribers  store.SubscriberStore
	events       store.AnalyticsStore
}

func NewDashboardHandler(
	posts store.PostStore,
	projects store.ProjectStore,
	testimonials store.TestimonialStore,
	contacts store.ContactStore,
	subscribers store.SubscriberStore,
	events store.AnalyticsStore,
) *DashboardHandler {
	return &DashboardHandler{
		posts:        posts,
		projects:     projects,
		testimonials: testimonials,
		contacts:     contacts,
		subscribers:  subscribers,
		events:       events,
	}
}

func (h *DashboardHandler) Register(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.Summary)
}

type resourceCounts struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type dashboardResponse struct {
	Posts        resourceCounts `json:"posts"`
	Projects     resourceCounts `json:"projects"`
	Testimonials resourceCounts `json:"testimonials"`
	Contacts     resourceCounts `json:"contacts"`
	Subscribers  resourceCounts `json:"subscribers"`
	TotalEvents  int64          `json:"totalEvents"`
}

func sumCounts(byStatus map[string]int64) resourceCounts {
	var total int64
	for _, n := range byStatus {
		total += n
	}
	return resourceCounts{Total: total, ByStatus: byStatus}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	var out dashboardResponse

	counts, err := h.posts.CountByStatus(ctx)
	if err != nil {
		failErr(c, err, "Dashboard")
		return
	}
	out.Posts = sumCounts(counts)

	if counts, err = h.projects.CountByStatus(ctx); err != nil {
		failErr(c, err, "Dashboard")
		return
	}
	out.Projects = sumCounts(counts)

	if counts, err = h.testimonials.CountByStatus(ctx); err != nil {
		failErr(c, err, "Dashboard")
		return
	}
	out.Testimonials = sumCounts(counts)

	if counts, err = h.contacts.CountByStatus(ctx); err != nil {
		failErr(c, err, "Dashboard")
		return
	}
	out.Contacts = sumCounts(counts)

	if counts, err = h.subscribers.CountByStatus(ctx); err != nil {
		failErr(c, err, "Dashboard")
		return
	}
	out.Subscribers = sumCounts(counts)

	if out.TotalEvents, err = h.events.TotalEvents(ctx); err != nil {
		failErr(c, err, "Dashboard")
		return
	}

	ok(c, http.StatusOK, out)
}
