package looker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a Client against an httptest server that also serves
// the token endpoint.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	mux.HandleFunc("/api/4.0/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := log.New()
	logger.SetOutput(io.Discard)

	return NewClient(server.URL, "client-id", "client-secret", logger)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListFolderChildrenPaginates(t *testing.T) {
	mux := http.NewServeMux()

	var gotAuth string

	mux.HandleFunc("/api/4.0/folders/root-1/children", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		offset := r.URL.Query().Get("offset")

		if offset == "0" {
			page := make([]Folder, childrenPageSize)
			for i := range page {
				page[i] = Folder{ID: fmt.Sprintf("folder-%d", i), Name: fmt.Sprintf("f%d", i)}
			}
			writeJSON(t, w, page)
			return
		}

		writeJSON(t, w, []Folder{{ID: "folder-last", Name: "last"}})
	})

	client := newTestClient(t, mux)

	children, err := client.ListFolderChildren(context.Background(), "root-1")
	require.NoError(t, err)

	assert.Len(t, children, childrenPageSize+1)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "folder-last", children[childrenPageSize].ID)
}

func TestCreateFolder(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/4.0/folders", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body createFolderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Finance", body.Name)
		assert.Equal(t, "root-1", body.ParentID)

		writeJSON(t, w, Folder{ID: "folder-9", Name: body.Name, ParentID: body.ParentID})
	})

	client := newTestClient(t, mux)

	folder, err := client.CreateFolder(context.Background(), "root-1", "Finance")
	require.NoError(t, err)

	assert.Equal(t, "folder-9", folder.ID)
}

func TestServerErrorIsUnavailable(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/4.0/lookml_dashboards", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	client := newTestClient(t, mux)

	_, err := client.ListLookmlDashboards(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClientErrorCarriesMessage(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/4.0/dashboards/99", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Dashboard not found"}`)
	})

	client := newTestClient(t, mux)

	_, err := client.GetDashboard(context.Background(), "99")
	require.Error(t, err)

	var apiErr *ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Dashboard not found")
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestCopyDashboardTargetsFolder(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/4.0/dashboards/123/copy", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "folder-1", r.URL.Query().Get("folder_id"))

		writeJSON(t, w, Dashboard{ID: "500", Title: "Revenue", FolderID: "folder-1"})
	})

	client := newTestClient(t, mux)

	dashboard, err := client.CopyDashboard(context.Background(), "123", "folder-1")
	require.NoError(t, err)

	assert.Equal(t, "500", dashboard.ID)
	assert.Equal(t, "folder-1", dashboard.FolderID)
}

func TestImportLookmlDashboardPath(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/4.0/dashboards/model::dash1/import/folder-2", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		writeJSON(t, w, Dashboard{ID: "501", FolderID: "folder-2", LookmlLinkID: "model::dash1"})
	})

	client := newTestClient(t, mux)

	dashboard, err := client.ImportLookmlDashboard(context.Background(), "model::dash1", "folder-2")
	require.NoError(t, err)

	assert.Equal(t, "model::dash1", dashboard.LookmlLinkID)
}

func TestAcquireEmbedSession(t *testing.T) {
	mux := http.NewServeMux()

	var acquired acquireSessionRequest

	mux.HandleFunc("/api/4.0/embed/cookieless_session/acquire", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&acquired))
		writeJSON(t, w, acquireSessionResponse{SessionReferenceToken: "ref-token"})
	})

	mux.HandleFunc("/api/4.0/folders/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme", r.URL.Query().Get("name"))

		writeJSON(t, w, []Folder{
			{ID: "folder-7", Name: "acme", IsEmbed: false},
			{ID: "folder-8", Name: "acme", IsEmbed: true},
		})
	})

	mux.HandleFunc("/api/4.0/folders/folder-8/parent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, Folder{ID: "embed-root", IsEmbedSharedRoot: true})
	})

	client := newTestClient(t, mux)

	rootId, err := client.AcquireEmbedSession(context.Background(), "", "acme")
	require.NoError(t, err)

	assert.Equal(t, "folder-8", rootId)
	assert.Equal(t, "seed-user-acme", acquired.ExternalUserID)
	assert.Equal(t, "acme", acquired.ExternalGroupID)
	assert.True(t, acquired.ForceLogoutLogin)
	assert.Equal(t, 3600, acquired.SessionLength)
}

func TestAcquireEmbedSessionNoEmbedFolder(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/4.0/embed/cookieless_session/acquire", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, acquireSessionResponse{SessionReferenceToken: "ref-token"})
	})

	mux.HandleFunc("/api/4.0/folders/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []Folder{{ID: "folder-7", Name: "acme", IsEmbed: false}})
	})

	client := newTestClient(t, mux)

	_, err := client.AcquireEmbedSession(context.Background(), "seed-user", "acme")

	assert.ErrorContains(t, err, "no embed folder found")
}
