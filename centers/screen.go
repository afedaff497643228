package centers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/acikkaynak/reliefhub-go/geocode"
	"github.com/acikkaynak/reliefhub-go/hubs"
	"github.com/acikkaynak/reliefhub-go/mapview"
	"github.com/acikkaynak/reliefhub-go/metrics"
	"github.com/acikkaynak/reliefhub-go/pkg/config"
	log "github.com/acikkaynak/reliefhub-go/pkg/logger"
	"github.com/acikkaynak/reliefhub-go/registry"
	"github.com/acikkaynak/reliefhub-go/store"
	"github.com/google/uuid"
	"github.com/robfig/cron"
	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

var ErrUnmounted = errors.New("relief centers screen is unmounted")

type Options struct {
	Geocoder  geocode.Geocoder
	Registry  registry.Registry
	Opener    mapview.Opener
	Platform  mapview.Platform
	Timeout   time.Duration
	Debounce  time.Duration
	MinLength int
	NewID     func() string
}

// Screen drives the relief centers map and registration form. It serves both the
// local-only and the backend-backed variants; only the Registry differs.
type Screen struct {
	store    *store.Store
	geocoder geocode.Geocoder
	registry registry.Registry
	opener   mapview.Opener
	platform mapview.Platform
	timeout  time.Duration
	newID    func() string
	debounce *geocode.Debouncer
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	refresh *cron.Cron
}

func New(opts Options) *Screen {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MinLength <= 0 {
		opts.MinLength = geocode.DefaultMinLength
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Platform == "" {
		opts.Platform = mapview.PlatformWeb
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Screen{
		store:    store.New(),
		geocoder: opts.Geocoder,
		registry: opts.Registry,
		opener:   opts.Opener,
		platform: opts.Platform,
		timeout:  opts.Timeout,
		newID:    opts.NewID,
		logger:   log.Component("centers"),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.debounce = geocode.NewDebouncer(opts.Geocoder, opts.Debounce, opts.MinLength, s.onGeocoded)
	return s
}

// NewFromConfig builds a screen whose registry is chosen by cfg.CentersMode.
func NewFromConfig(cfg *config.Config, opener mapview.Opener, platform mapview.Platform) (*Screen, error) {
	geocoder := geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeAPIKey,
		geocode.WithMinLength(cfg.GeocodeMinLength),
		geocode.WithTimeout(cfg.RequestTimeout))

	var reg registry.Registry
	switch cfg.CentersMode {
	case config.CentersModeLocal:
		reg = registry.NewLocal()
	default:
		baseURL, err := cfg.RegistryURL()
		if err != nil {
			return nil, err
		}
		reg = registry.NewClient(baseURL, cfg.RequestTimeout, registry.WithAPIKey(cfg.APIKey))
	}

	return New(Options{
		Geocoder:  geocoder,
		Registry:  reg,
		Opener:    opener,
		Platform:  platform,
		Timeout:   cfg.RequestTimeout,
		Debounce:  cfg.GeocodeDebounce,
		MinLength: cfg.GeocodeMinLength,
	}), nil
}

func (s *Screen) State() store.State {
	return s.store.State()
}

func (s *Screen) View() mapview.View {
	st := s.store.State()
	return mapview.Render(st.Hubs(), st.Selected, s.platform)
}

// Mount loads the hub list. On failure the list keeps its previous content, a notice
// is raised and the error is returned.
func (s *Screen) Mount(ctx context.Context) error {
	return s.list(ctx, true)
}

func (s *Screen) list(ctx context.Context, notify bool) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	seq := s.store.Dispatch(store.ListRequested{}).Seq()
	list, err := s.registry.ListHubs(ctx)
	if s.unmounted() {
		return ErrUnmounted
	}
	if err != nil {
		s.logger.Error("could not list relief hubs", zap.Error(err), zap.Bool("background", !notify))
		if notify {
			s.store.Dispatch(store.ListFailed{Err: err})
		}
		if !errors.Is(err, hubs.ErrListFailed) {
			err = fmt.Errorf("%w: %v", hubs.ErrListFailed, err)
		}
		return err
	}

	s.store.Dispatch(store.HubsListed{Hubs: list, RequestSeq: seq})
	return nil
}

// StartAutoRefresh re-lists hubs on the given cron schedule until Unmount.
// Background failures are logged, not raised as notices.
func (s *Screen) StartAutoRefresh(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted() {
		return ErrUnmounted
	}
	if s.refresh != nil {
		s.refresh.Stop()
	}

	c := cron.New()
	if err := c.AddFunc(spec, func() {
		_ = s.list(context.Background(), false)
	}); err != nil {
		return fmt.Errorf("could not schedule hub refresh: %w", err)
	}
	c.Start()
	s.refresh = c
	return nil
}

// EditDraft replaces the form draft and re-geocodes when the location changed.
func (s *Screen) EditDraft(d hubs.Draft) {
	prev := s.store.State().Draft.Location
	s.store.Dispatch(store.DraftEdited{Draft: d})
	if strings.TrimSpace(prev) != strings.TrimSpace(d.Location) {
		s.debounce.Submit(d.Location)
	}
}

// SubmitDraft replaces the form draft and submits it straight away. Any pending
// background lookup is dropped; the location is resolved by the submission.
func (s *Screen) SubmitDraft(ctx context.Context, d hubs.Draft) (hubs.ReliefHub, error) {
	s.debounce.Submit("")
	s.store.Dispatch(store.DraftEdited{Draft: d})
	return s.Submit(ctx)
}

func (s *Screen) ToggleAidType(t hubs.AidType) {
	s.store.Dispatch(store.DraftEdited{Draft: s.store.State().Draft.Toggle(t)})
}

func (s *Screen) onGeocoded(address string, c hubs.Coordinate, err error) {
	if s.unmounted() {
		return
	}
	if err != nil {
		s.logger.Debug("background geocode failed", zap.String("address", address), zap.Error(err))
		s.store.Dispatch(store.GeocodeFailed{Address: address, Err: err})
		return
	}
	s.store.Dispatch(store.GeocodeResolved{Address: address, Coordinate: c})
}

// Submit validates the draft, resolves its location and registers the hub. The hub is
// added to the displayed list only after the registry acknowledged it.
func (s *Screen) Submit(ctx context.Context) (hubs.ReliefHub, error) {
	st := s.store.State()
	draft := st.Draft

	if err := draft.Validate(); err != nil {
		s.store.Dispatch(store.ValidationFailed{Err: err})
		metrics.HubRegistrations.WithLabelValues("invalid").Inc()
		return hubs.ReliefHub{}, err
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	c, ok := st.ResolvedDraftCoordinate()
	if !ok {
		var err error
		c, err = s.geocoder.Geocode(ctx, draft.Location)
		if s.unmounted() {
			return hubs.ReliefHub{}, ErrUnmounted
		}
		if err != nil {
			s.logger.Warn("could not geocode relief hub location",
				zap.String("location", draft.Location), zap.Error(err))
			s.store.Dispatch(store.GeocodeFailed{Address: draft.Location, Err: err, Blocking: true})
			metrics.HubRegistrations.WithLabelValues("geocode_failed").Inc()
			return hubs.ReliefHub{}, fmt.Errorf("%w: %v", hubs.ErrGeocodeFailed, err)
		}
		s.store.Dispatch(store.GeocodeResolved{Address: draft.Location, Coordinate: c})
	}

	hub := draft.Build(s.newID(), c)
	err := s.registry.RegisterHub(ctx, hub)
	if s.unmounted() {
		return hubs.ReliefHub{}, ErrUnmounted
	}
	if err != nil {
		s.logger.Error("could not register relief hub", zap.String("hub_id", hub.ID), zap.Error(err))
		s.store.Dispatch(store.RegistrationFailed{Err: err})
		metrics.HubRegistrations.WithLabelValues("rejected").Inc()
		if !errors.Is(err, hubs.ErrRegistrationFailed) {
			err = fmt.Errorf("%w: %v", hubs.ErrRegistrationFailed, err)
		}
		return hubs.ReliefHub{}, err
	}

	s.store.Dispatch(store.HubRegistered{Hub: hub})
	metrics.HubRegistrations.WithLabelValues("ok").Inc()
	s.logger.Info("relief hub registered", zap.String("hub_id", hub.ID), zap.String("hub_name", hub.HubName))
	return hub, nil
}

func (s *Screen) Select(id string) {
	s.store.Dispatch(store.CenterSelected{ID: id})
}

func (s *Screen) ClearSelection() {
	s.store.Dispatch(store.SelectionCleared{})
}

func (s *Screen) SwitchMode(m store.Mode) {
	s.store.Dispatch(store.ModeChanged{Mode: m})
}

func (s *Screen) DismissNotice() {
	s.store.Dispatch(store.NoticeDismissed{})
}

// OpenDirections opens directions to the selected hub, raising a notice on failure.
func (s *Screen) OpenDirections() error {
	hub, ok := s.store.State().SelectedHub()
	if !ok {
		return errors.New("no relief center selected")
	}
	if s.opener == nil {
		err := errors.New("no deep link opener configured")
		s.store.Dispatch(store.DirectionsFailed{Err: err})
		return err
	}
	if err := mapview.OpenDirections(s.opener, s.platform, hub); err != nil {
		s.logger.Warn("could not open directions", zap.String("hub_id", hub.ID), zap.Error(err))
		s.store.Dispatch(store.DirectionsFailed{Err: err})
		return err
	}
	return nil
}

// Unmount cancels in-flight calls and stops background work. Results that arrive
// afterwards are dropped.
func (s *Screen) Unmount() {
	s.cancel()
	s.mu.Lock()
	if s.refresh != nil {
		s.refresh.Stop()
		s.refresh = nil
	}
	s.mu.Unlock()
	s.debounce.Close()
}

func (s *Screen) unmounted() bool {
	return s.ctx.Err() != nil
}

// opContext bounds ctx by the request timeout and by the screen lifetime.
func (s *Screen) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
