package seed

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/looker-open-source/embed-content-seed/pkg/looker"
	log "github.com/sirupsen/logrus"
)

// mockRepo implements looker.Repository for seeder tests. It keeps the
// remote state in maps and counts mutating calls so tests can assert
// idempotency.
type mockRepo struct {
	rootID    string
	children  map[string][]looker.Folder    // parent id -> children
	contents  map[string][]looker.Dashboard // folder id -> dashboards
	sources   map[string]looker.Dashboard   // source dashboards by id
	lookml    []looker.LookmlDashboard

	listChildrenCalls int
	createCalls       int
	copyCalls         int
	importCalls       int
	lookmlListCalls   int

	nextID int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		rootID:   "root-1",
		children: map[string][]looker.Folder{},
		contents: map[string][]looker.Dashboard{},
		sources:  map[string]looker.Dashboard{},
		nextID:   100,
	}
}

func (m *mockRepo) id(prefix string) string {
	m.nextID += 1
	return prefix + "-" + strconv.Itoa(m.nextID)
}

func (m *mockRepo) AcquireEmbedSession(
	_ context.Context,
	_ string,
	_ string,
) (string, error) {
	return m.rootID, nil
}

func (m *mockRepo) ListFolderChildren(
	_ context.Context,
	folderID string,
) ([]looker.Folder, error) {
	m.listChildrenCalls += 1
	return m.children[folderID], nil
}

func (m *mockRepo) CreateFolder(
	_ context.Context,
	parentID string,
	name string,
) (looker.Folder, error) {
	m.createCalls += 1

	folder := looker.Folder{
		ID:       m.id("folder"),
		Name:     name,
		ParentID: parentID,
	}

	m.children[parentID] = append(m.children[parentID], folder)

	return folder, nil
}

func (m *mockRepo) ListFolderDashboards(
	_ context.Context,
	folderID string,
) ([]looker.Dashboard, error) {
	return m.contents[folderID], nil
}

func (m *mockRepo) GetDashboard(
	_ context.Context,
	dashboardID string,
) (looker.Dashboard, error) {
	dashboard, ok := m.sources[dashboardID]
	if !ok {
		return looker.Dashboard{}, fmt.Errorf("dashboard %s not found", dashboardID)
	}
	return dashboard, nil
}

func (m *mockRepo) CopyDashboard(
	_ context.Context,
	dashboardID string,
	folderID string,
) (looker.Dashboard, error) {
	m.copyCalls += 1

	source, ok := m.sources[dashboardID]
	if !ok {
		return looker.Dashboard{}, fmt.Errorf("dashboard %s not found", dashboardID)
	}

	copied := looker.Dashboard{
		ID:       m.id("dash"),
		Title:    source.Title,
		FolderID: folderID,
	}

	m.contents[folderID] = append(m.contents[folderID], copied)

	return copied, nil
}

func (m *mockRepo) ListLookmlDashboards(
	_ context.Context,
) ([]looker.LookmlDashboard, error) {
	m.lookmlListCalls += 1
	return m.lookml, nil
}

func (m *mockRepo) ImportLookmlDashboard(
	_ context.Context,
	lookmlDashboardID string,
	folderID string,
) (looker.Dashboard, error) {
	m.importCalls += 1

	for _, dashboard := range m.lookml {
		if dashboard.ID != lookmlDashboardID {
			continue
		}

		imported := looker.Dashboard{
			ID:           m.id("dash"),
			Title:        dashboard.Title,
			FolderID:     folderID,
			LookmlLinkID: dashboard.ID,
		}

		m.contents[folderID] = append(m.contents[folderID], imported)

		return imported, nil
	}

	return looker.Dashboard{}, fmt.Errorf(
		"lookml dashboard %s not found",
		lookmlDashboardID,
	)
}

// folderID resolves a subfolder name to its id in the mock state.
func (m *mockRepo) folderID(parentID, name string) string {
	for _, folder := range m.children[parentID] {
		if folder.Name == name {
			return folder.ID
		}
	}
	return ""
}

func newTestSeeder(config *Config, repo looker.Repository) *Seeder {
	logger := log.New()
	logger.SetOutput(io.Discard)

	return &Seeder{
		log:         logger,
		repo:        repo,
		config:      config,
		report:      &Report{RunID: "test-run"},
		folderCache: map[string][]looker.Dashboard{},
		titleCache:  map[string]string{},
	}
}
