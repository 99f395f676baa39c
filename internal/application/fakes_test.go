package application

import (
	"context"
	"fmt"
	"sync"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"
)

// fakeShopify is an in-memory Admin API
type fakeShopify struct {
	mu sync.Mutex

	mainTheme    *domain.ThemeIdentity
	mainThemeErr error
	files        map[string]string
	filesErr     error
	fileCalls    [][]string

	activeTheme *domain.ThemeIdentity
	activeErr   error
	assets      map[string]string
	listErr     error
	getErr      map[string]error
	saveErr     map[string]error
	deleteErr   map[string]error
	saved       []string

	products         map[string]*domain.Product
	searchResult     []domain.Product
	searchErr        error
	searches         []string
	updates          []ports.ProductUpdate
	updateErr        error
	deletedKeys      map[string][]string
	hasProducts      bool
	hasProductsErr   error
	definitionKeys   []string
	definitionErr    error
	createDefErr     map[string]error
	createdDefs      []string
	createDefinition int
}

func newFakeShopify() *fakeShopify {
	return &fakeShopify{
		files:        map[string]string{},
		assets:       map[string]string{},
		getErr:       map[string]error{},
		saveErr:      map[string]error{},
		deleteErr:    map[string]error{},
		products:     map[string]*domain.Product{},
		deletedKeys:  map[string][]string{},
		createDefErr: map[string]error{},
	}
}

var _ ports.ShopifyClient = (*fakeShopify)(nil)

func (f *fakeShopify) MainTheme(ctx context.Context, shop string) (*domain.ThemeIdentity, error) {
	if f.mainThemeErr != nil {
		return nil, f.mainThemeErr
	}
	return f.mainTheme, nil
}

func (f *fakeShopify) ThemeFiles(ctx context.Context, shop string, themeID string, filenames []string) ([]domain.ThemeFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fileCalls = append(f.fileCalls, filenames)
	if f.filesErr != nil {
		return nil, f.filesErr
	}
	var out []domain.ThemeFile
	for _, name := range filenames {
		if content, ok := f.files[name]; ok {
			out = append(out, domain.ThemeFile{Filename: name, Content: content})
		}
	}
	return out, nil
}

func (f *fakeShopify) ActiveTheme(ctx context.Context, shop string) (*domain.ThemeIdentity, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return f.activeTheme, nil
}

func (f *fakeShopify) ListAssets(ctx context.Context, shop string, themeID string) ([]domain.ThemeAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.ThemeAsset, 0, len(f.assets))
	for key := range f.assets {
		out = append(out, domain.ThemeAsset{Key: key})
	}
	return out, nil
}

func (f *fakeShopify) GetAsset(ctx context.Context, shop string, themeID string, key string) (*domain.ThemeAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.getErr[key]; err != nil {
		return nil, err
	}
	value, ok := f.assets[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrAssetNotFound)
	}
	return &domain.ThemeAsset{Key: key, Value: value}, nil
}

func (f *fakeShopify) SaveAsset(ctx context.Context, shop string, themeID string, asset domain.ThemeAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.saveErr[asset.Key]; err != nil {
		return err
	}
	f.assets[asset.Key] = asset.Value
	f.saved = append(f.saved, asset.Key)
	return nil
}

func (f *fakeShopify) DeleteAsset(ctx context.Context, shop string, themeID string, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[key]; err != nil {
		return err
	}
	if _, ok := f.assets[key]; !ok {
		return fmt.Errorf("%s: %w", key, domain.ErrAssetNotFound)
	}
	delete(f.assets, key)
	return nil
}

func (f *fakeShopify) SearchProducts(ctx context.Context, shop string, query string, first int) ([]domain.Product, error) {
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResult, nil
}

func (f *fakeShopify) GetProduct(ctx context.Context, shop string, productID string) (*domain.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", productID, domain.ErrProductNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeShopify) UpdateProduct(ctx context.Context, shop string, update ports.ProductUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, update)
	if p, ok := f.products[update.ID]; ok && update.Tags != nil {
		p.Tags = update.Tags
	}
	return nil
}

func (f *fakeShopify) DeleteMetafields(ctx context.Context, shop string, ownerID string, namespace string, keys []string) error {
	f.deletedKeys[ownerID] = append(f.deletedKeys[ownerID], keys...)
	return nil
}

func (f *fakeShopify) HasProducts(ctx context.Context, shop string) (bool, error) {
	return f.hasProducts, f.hasProductsErr
}

func (f *fakeShopify) MetafieldDefinitionKeys(ctx context.Context, shop string, namespace string) ([]string, error) {
	return f.definitionKeys, f.definitionErr
}

func (f *fakeShopify) CreateMetafieldDefinition(ctx context.Context, shop string, definition domain.MetafieldDefinition) error {
	f.createDefinition++
	if err := f.createDefErr[definition.Key]; err != nil {
		return err
	}
	f.createdDefs = append(f.createdDefs, definition.Key)
	return nil
}

// fakeConfigRepo stores configurations in memory
type fakeConfigRepo struct {
	mu        sync.Mutex
	configs   map[string]*domain.ShopConfiguration
	getErr    error
	createErr error
	creates   int
	updates   int
	deleted   []string
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: map[string]*domain.ShopConfiguration{}}
}

func (r *fakeConfigRepo) GetByShop(ctx context.Context, shop string) (*domain.ShopConfiguration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.configs[shop]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConfigRepo) Create(ctx context.Context, config *domain.ShopConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.configs[config.Shop]; ok {
		return domain.ErrConfigurationExists
	}
	cp := *config
	r.configs[config.Shop] = &cp
	return nil
}

func (r *fakeConfigRepo) Update(ctx context.Context, shop string, patch *domain.ShopConfigurationPatch) (*domain.ShopConfiguration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	c, ok := r.configs[shop]
	if !ok {
		return nil, nil
	}
	patch.Apply(c)
	cp := *c
	return &cp, nil
}

func (r *fakeConfigRepo) Delete(ctx context.Context, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.configs, shop)
	r.deleted = append(r.deleted, shop)
	return nil
}

// fakeConfigCache is a map-backed configuration cache
type fakeConfigCache struct {
	configs     map[string]*domain.ShopConfiguration
	getErr      error
	invalidated []string
}

func newFakeConfigCache() *fakeConfigCache {
	return &fakeConfigCache{configs: map[string]*domain.ShopConfiguration{}}
}

func (c *fakeConfigCache) Get(ctx context.Context, shop string) (*domain.ShopConfiguration, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	cfg, ok := c.configs[shop]
	if !ok {
		return nil, nil
	}
	cp := *cfg
	return &cp, nil
}

func (c *fakeConfigCache) Set(ctx context.Context, config *domain.ShopConfiguration) error {
	cp := *config
	c.configs[config.Shop] = &cp
	return nil
}

func (c *fakeConfigCache) Invalidate(ctx context.Context, shop string) error {
	delete(c.configs, shop)
	c.invalidated = append(c.invalidated, shop)
	return nil
}

type fakeOperationRepo struct {
	saved   []*domain.ThemeOperation
	saveErr error
}

func (r *fakeOperationRepo) Save(ctx context.Context, op *domain.ThemeOperation) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, op)
	return nil
}

func (r *fakeOperationRepo) ListByShop(ctx context.Context, shop string, limit int64) ([]*domain.ThemeOperation, error) {
	var out []*domain.ThemeOperation
	for i := len(r.saved) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.saved[i].Shop == shop {
			out = append(out, r.saved[i])
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	logged []*domain.WebhookEvent
	err    error
}

func (r *fakeEventRepo) LogWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	r.logged = append(r.logged, event)
	return r.err
}

type fakeDedup struct {
	seen      map[string]bool
	err       error
	forgotten []string
}

func newFakeDedup() *fakeDedup {
	return &fakeDedup{seen: map[string]bool{}}
}

func (d *fakeDedup) FirstDelivery(ctx context.Context, webhookID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[webhookID] {
		return false, nil
	}
	d.seen[webhookID] = true
	return true, nil
}

func (d *fakeDedup) Forget(ctx context.Context, webhookID string) error {
	delete(d.seen, webhookID)
	d.forgotten = append(d.forgotten, webhookID)
	return nil
}

type fakeMetrics struct {
	outcomes []string
	steps    []string
	webhooks []string
}

func (m *fakeMetrics) CompatibilityChecked(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

func (m *fakeMetrics) ThemeStep(operation, step, result string) {
	m.steps = append(m.steps, operation+"/"+step+"/"+result)
}

func (m *fakeMetrics) WebhookReceived(topic, status string) {
	m.webhooks = append(m.webhooks, topic+"/"+status)
}

type fakeActivity struct {
	published []*domain.Activity
}

func (a *fakeActivity) Publish(activity *domain.Activity) {
	a.published = append(a.published, activity)
}

// fakeOAuth hands out authorize URLs and a fixed token
type fakeOAuth struct {
	token       string
	exchangeErr error
	exchanged   []string
}

func (o *fakeOAuth) AuthorizeURL(shop, state string) (string, error) {
	return "https://" + shop + "/admin/oauth/authorize?state=" + state, nil
}

func (o *fakeOAuth) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	o.exchanged = append(o.exchanged, shop+":"+code)
	if o.exchangeErr != nil {
		return "", o.exchangeErr
	}
	return o.token, nil
}

// fakeStates is a map-backed state store
type fakeStates struct {
	states map[string]string
}

func newFakeStates() *fakeStates {
	return &fakeStates{states: map[string]string{}}
}

func (s *fakeStates) Save(ctx context.Context, state, shop string) error {
	s.states[state] = shop
	return nil
}

func (s *fakeStates) Consume(ctx context.Context, state string) (string, error) {
	shop := s.states[state]
	delete(s.states, state)
	return shop, nil
}

// fakeSessions keeps saved sessions by id
type fakeSessions struct {
	sessions map[string]*domain.Session
	saveErr  error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*domain.Session{}}
}

func (s *fakeSessions) GetOfflineSession(ctx context.Context, shop string) (*domain.Session, error) {
	return s.sessions[domain.OfflineSessionID(shop)], nil
}

func (s *fakeSessions) SaveSession(ctx context.Context, session *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *fakeSessions) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	delete(s.sessions, domain.OfflineSessionID(shop))
	return 1, nil
}
