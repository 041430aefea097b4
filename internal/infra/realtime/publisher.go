package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mindhaven/internal/domain/dto"
	Iservices "mindhaven/internal/domain/interfaces/services"
	"mindhaven/internal/infra/logger"
)

// DashboardPublisher runs one background task per connected user. The task
// starts when the user's channel count goes from zero to one and is
// cancelled when it returns to zero. Each iteration fetches an analytics
// snapshot and unicasts it; a fetch error skips the tick but never stops
// the loop.
type DashboardPublisher struct {
	Logger    *logger.Logger
	Analytics Iservices.IAnalyticsService
	Registry  *Registry
	Interval  time.Duration

	mu    sync.Mutex
	tasks map[string]*publisherTask
	wg    sync.WaitGroup
}

type publisherTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewDashboardPublisher(logger *logger.Logger, analytics Iservices.IAnalyticsService, registry *Registry, interval time.Duration) *DashboardPublisher {
	return &DashboardPublisher{
		Logger:    logger,
		Analytics: analytics,
		Registry:  registry,
		Interval:  interval,
		tasks:     make(map[string]*publisherTask),
	}
}

// UserOnline starts the publish loop for the user. Idempotent: a second
// online signal while a task is running is ignored.
func (p *DashboardPublisher) UserOnline(userID string) {
	p.mu.Lock()
	if _, running := p.tasks[userID]; running {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	task := &publisherTask{cancel: cancel, done: make(chan struct{})}
	p.tasks[userID] = task
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(ctx, userID, task)
}

// UserOffline cancels the user's publish loop. The cancellation is
// observed before the next interval elapses; the goroutine itself is
// awaited in Drain. Not blocking here matters: the offline signal can
// arrive on the publisher's own goroutine when its unicast drops the
// user's last channel.
func (p *DashboardPublisher) UserOffline(userID string) {
	p.mu.Lock()
	task, running := p.tasks[userID]
	if running {
		delete(p.tasks, userID)
	}
	p.mu.Unlock()

	if running {
		task.cancel()
	}
}

// Drain cancels every task and waits for all publisher goroutines to exit.
func (p *DashboardPublisher) Drain() {
	p.mu.Lock()
	for userID, task := range p.tasks {
		task.cancel()
		delete(p.tasks, userID)
	}
	p.mu.Unlock()

	p.wg.Wait()
	p.Logger.Info("Dashboard publisher drained")
}

func (p *DashboardPublisher) run(ctx context.Context, userID string, task *publisherTask) {
	defer close(task.done)
	defer p.wg.Done()

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		p.publish(ctx, userID)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// publish builds and delivers one dashboard snapshot. Errors from the
// analytics collaborator are logged and the tick is skipped.
func (p *DashboardPublisher) publish(ctx context.Context, userID string) {
	analytics, err := p.Analytics.UserAnalytics(ctx, userID)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to fetch analytics for user %s, skipping tick: %v", userID, err))
		return
	}

	currentMood, err := p.Analytics.CurrentMood(ctx, userID)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to fetch current mood for user %s, skipping tick: %v", userID, err))
		return
	}

	snapshot := dto.DashboardSnapshot{
		Type:               dto.EnvelopeDashboardUpdate,
		ActiveSessions:     p.Registry.ChannelCount(userID),
		RecentInteractions: analytics.TotalInteractions,
		CurrentMood:        currentMood,
		ActivityData:       activityChart(analytics.HourDistribution),
		MoodData:           moodChart(analytics.MoodDistribution),
		RecentActivity:     analytics.RecentActivities,
	}

	p.Registry.Unicast(userID, snapshot)
}

func activityChart(hourDistribution []int) dto.ChartData {
	labels := make([]string, 24)
	for hour := range labels {
		labels[hour] = fmt.Sprintf("%d:00", hour)
	}
	return dto.ChartData{
		Labels:   labels,
		Datasets: []dto.ChartDataset{{Label: "Activity Level", Data: hourDistribution}},
	}
}

func moodChart(moodDistribution []int) dto.ChartData {
	return dto.ChartData{
		Labels:   []string{"1-2", "3-4", "5-6", "7-8", "9-10"},
		Datasets: []dto.ChartDataset{{Label: "Mood Distribution", Data: moodDistribution}},
	}
}
