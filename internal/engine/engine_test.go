package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ConstCodeX/structurex/internal/answers"
	"github.com/ConstCodeX/structurex/internal/clock"
	"github.com/ConstCodeX/structurex/internal/fsops"
	"github.com/ConstCodeX/structurex/internal/hash"
	"github.com/ConstCodeX/structurex/internal/manifest"
	"github.com/ConstCodeX/structurex/internal/planner"
	"github.com/ConstCodeX/structurex/internal/render"
)

const manifestPath = ".structurex/manifest.json"

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type fixture struct {
	engine *Engine
	fs     *fsops.BillyFS
	store  *manifest.FileStore
	clock  *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := fsops.NewMemFS()
	renderer, err := render.New("")
	require.NoError(t, err)

	store := manifest.NewFileStore(fs, manifestPath)
	clk := clock.NewFakeClock(epoch)
	eng := New(fs, renderer, hash.NewSHA256Hasher(), clk, store, planner.DefaultLayout())

	return &fixture{engine: eng, fs: fs, store: store, clock: clk}
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := f.fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, f.fs.AtomicWrite(path, []byte(content), 0o644))
}

func componentRequest(name, tierName string) *ComponentRequest {
	return &ComponentRequest{Answers: answers.Raw{Name: name, Tier: tierName}}
}

func statuses(r *GenerateResult) []Status {
	out := make([]Status, 0, len(r.Applied))
	for _, a := range r.Applied {
		out = append(out, a.Status)
	}
	return out
}

func TestGenerateComponent_FreshTree(t *testing.T) {
	f := newFixture(t)

	result, err := f.engine.GenerateComponent(context.Background(), componentRequest("Avatar", "atom"))
	require.NoError(t, err)

	assert.False(t, result.DryRun)
	assert.Equal(t, []Status{
		StatusCreated, // component
		StatusCreated, // test
		StatusCreated, // local barrel
		StatusCreated, // folder barrel
		StatusMerged,
		StatusCreated, // root barrel
		StatusMerged,
	}, statuses(result))

	assert.Contains(t, f.read(t, "src/atoms/Avatar/Avatar.atom.tsx"), "export class Avatar extends Atom<AvatarProps>")
	assert.Contains(t, f.read(t, "test/atoms/Avatar.test.tsx"), "'../../src/atoms/Avatar/Avatar.atom'")
	assert.Equal(t, "export * from './Avatar.atom';\n", f.read(t, "src/atoms/Avatar/index.ts"))
	assert.Equal(t, "export * from './Avatar';\n// AUTO-EXPORTS\n", f.read(t, "src/atoms/index.ts"))
	assert.Equal(t,
		"export * from './config';\nexport * from './core';\n\nexport * from './atoms/Avatar';\n// AUTO-EXPORTS\n",
		f.read(t, "src/index.ts"))
}

func TestGenerateComponent_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.GenerateComponent(ctx, componentRequest("Avatar", "atom"))
	require.NoError(t, err)
	folder := f.read(t, "src/atoms/index.ts")
	root := f.read(t, "src/index.ts")

	result, err := f.engine.GenerateComponent(ctx, componentRequest("Avatar", "atom"))
	require.NoError(t, err)

	assert.Equal(t, []Status{
		StatusUnchanged,
		StatusUnchanged,
		StatusKept,
		StatusKept,
		StatusUnchanged,
		StatusKept,
		StatusUnchanged,
	}, statuses(result))
	assert.Equal(t, folder, f.read(t, "src/atoms/index.ts"))
	assert.Equal(t, root, f.read(t, "src/index.ts"))
}

func TestGenerateComponent_OverwritesEditedComponent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.GenerateComponent(ctx, componentRequest("Avatar", "atom"))
	require.NoError(t, err)
	f.write(t, "src/atoms/Avatar/Avatar.atom.tsx", "hand edited\n")
	f.write(t, "src/atoms/Avatar/index.ts", "custom local barrel\n")

	result, err := f.engine.GenerateComponent(ctx, componentRequest("Avatar", "atom"))
	require.NoError(t, err)

	assert.Equal(t, StatusOverwritten, result.Applied[0].Status)
	assert.NotEqual(t, "hand edited\n", f.read(t, "src/atoms/Avatar/Avatar.atom.tsx"))
	assert.Equal(t, "custom local barrel\n", f.read(t, "src/atoms/Avatar/index.ts"))
}

func TestGenerateComponent_SecondComponentKeepsOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Avatar", "Badge"} {
		_, err := f.engine.GenerateComponent(ctx, componentRequest(name, "atom"))
		require.NoError(t, err)
	}
	_, err := f.engine.GenerateComponent(ctx, componentRequest("Card", "mol"))
	require.NoError(t, err)

	assert.Equal(t, "export * from './Avatar';\nexport * from './Badge';\n// AUTO-EXPORTS\n", f.read(t, "src/atoms/index.ts"))
	assert.Equal(t, "export * from './Card';\n// AUTO-EXPORTS\n", f.read(t, "src/molecules/index.ts"))
	assert.Equal(t,
		"export * from './config';\nexport * from './core';\n\n"+
			"export * from './atoms/Avatar';\nexport * from './atoms/Badge';\nexport * from './molecules/Card';\n"+
			"// AUTO-EXPORTS\n",
		f.read(t, "src/index.ts"))
}

func TestGenerateComponent_WithContainer(t *testing.T) {
	f := newFixture(t)

	raw := answers.Raw{Name: "Nav", Tier: "organism", WithContainer: "yes", WithTest: "no"}
	result, err := f.engine.GenerateComponent(context.Background(), &ComponentRequest{Answers: raw})
	require.NoError(t, err)

	require.Len(t, result.Applied, 7)
	assert.Contains(t, f.read(t, "src/organisms/Nav/Nav.ctn.ts"), "import { Nav } from './Nav.org';")

	exists, err := f.fs.Exists("test/organisms/Nav.test.tsx")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateComponent_ValidationError(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.GenerateComponent(context.Background(), componentRequest("button", "planet"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, answers.ErrInvalidName)

	exists, err := f.fs.Exists("src")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerateComponent_MalformedBarrelSkipped(t *testing.T) {
	f := newFixture(t)
	f.write(t, "src/atoms/index.ts", "export * from './Legacy';\n")

	result, err := f.engine.GenerateComponent(context.Background(), componentRequest("Avatar", "atom"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMergeSkipped)
	require.NotNil(t, result)

	skipped := result.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "src/atoms/index.ts", skipped[0].Action.Path)
	assert.Contains(t, skipped[0].Reason, "AUTO-EXPORTS")

	// the barrel is untouched and every other action still ran
	assert.Equal(t, "export * from './Legacy';\n", f.read(t, "src/atoms/index.ts"))
	assert.Contains(t, f.read(t, "src/index.ts"), "export * from './atoms/Avatar';")
	assert.Len(t, result.Applied, 7)
}

func TestGenerateComponent_CRLFBarrel(t *testing.T) {
	f := newFixture(t)
	f.write(t, "src/atoms/index.ts", "export * from './Legacy';\r\n// AUTO-EXPORTS\r\n")

	_, err := f.engine.GenerateComponent(context.Background(), componentRequest("Avatar", "atom"))
	require.NoError(t, err)

	assert.Equal(t,
		"export * from './Legacy';\r\nexport * from './Avatar';\r\n// AUTO-EXPORTS\r\n",
		f.read(t, "src/atoms/index.ts"))
}

func TestGenerate_DryRunWritesNothing(t *testing.T) {
	f := newFixture(t)

	req := componentRequest("Avatar", "atom")
	req.DryRun = true
	result, err := f.engine.GenerateComponent(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Empty(t, result.Applied)
	assert.Len(t, result.Plan.Actions, 7)

	for _, p := range []string{"src", "test", manifestPath} {
		exists, err := f.fs.Exists(p)
		require.NoError(t, err)
		assert.False(t, exists, p)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.engine.GenerateComponent(ctx, componentRequest("Avatar", "atom"))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Empty(t, result.Applied)
}

func TestGenerate_RejectsInvalidPlan(t *testing.T) {
	f := newFixture(t)

	plan := planner.NewPlan("component", "Broken")
	plan.AddAction(planner.Action{
		Kind:   planner.KindMergeAppend,
		Path:   "src/index.ts",
		Marker: planner.DefaultMarker,
		Line:   "export * from './Broken';",
		Seed:   planner.DefaultMarker + "\n",
	})

	_, err := f.engine.Generate(context.Background(), plan, false)
	assert.ErrorIs(t, err, planner.ErrOrdering)
}

func TestGenerate_RejectsEscapingPath(t *testing.T) {
	f := newFixture(t)

	plan := planner.NewPlan("component", "Escape")
	plan.AddAction(planner.Action{
		Kind:   planner.KindWrite,
		Path:   "../outside.ts",
		Source: planner.Source{Literal: "x"},
	})

	_, err := f.engine.Generate(context.Background(), plan, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to touch")
}

func TestGenerateHookAndPresenter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.engine.GenerateHook(ctx, &HookRequest{Name: "Auth"})
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusCreated}, statuses(result))
	assert.Contains(t, f.read(t, "src/hooks/useAuth.ts"), "export const useAuth")

	f.write(t, "src/hooks/useAuth.ts", "custom\n")
	result, err = f.engine.GenerateHook(ctx, &HookRequest{Name: "Auth"})
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusKept}, statuses(result))
	assert.Equal(t, "custom\n", f.read(t, "src/hooks/useAuth.ts"))

	result, err = f.engine.GeneratePresenter(ctx, &PresenterRequest{Name: "User"})
	require.NoError(t, err)
	assert.Equal(t, []Status{StatusCreated}, statuses(result))
	assert.Contains(t, f.read(t, "src/presenters/UserPresenter.ts"), "export class UserPresenter")

	_, err = f.engine.GeneratePresenter(ctx, &PresenterRequest{Name: "user"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerate_RecordsManifest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.GenerateComponent(ctx, componentRequest("Avatar", "atom"))
	require.NoError(t, err)

	m, err := f.store.Load()
	require.NoError(t, err)
	entry, ok := m.Find("component", "Avatar")
	require.True(t, ok)

	assert.Equal(t, "atom", entry.Tier)
	assert.Equal(t, epoch, entry.GeneratedAt)
	require.Len(t, entry.Files, 3)
	assert.Equal(t, "src/atoms/Avatar/Avatar.atom.tsx", entry.Files[0].Path)
	assert.Equal(t, hash.NewSHA256Hasher().HashBytes([]byte(f.read(t, entry.Files[0].Path))), entry.Files[0].Checksum)

	f.clock.Advance(time.Hour)
	_, err = f.engine.GenerateComponent(ctx, componentRequest("Avatar", "atom"))
	require.NoError(t, err)

	m, err = f.store.Load()
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, epoch.Add(time.Hour), m.Entries[0].GeneratedAt)
}

func TestList_ReportsDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.GenerateComponent(ctx, componentRequest("Avatar", "atom"))
	require.NoError(t, err)
	_, err = f.engine.GenerateHook(ctx, &HookRequest{Name: "Auth"})
	require.NoError(t, err)

	f.write(t, "src/atoms/Avatar/Avatar.atom.tsx", "edited\n")
	require.NoError(t, f.fs.Remove("test/atoms/Avatar.test.tsx"))

	result, err := f.engine.List(ctx)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	avatar := result.Entries[0]
	assert.Equal(t, "Avatar", avatar.Name)
	assert.Equal(t, []ListedFile{
		{Path: "src/atoms/Avatar/Avatar.atom.tsx", State: FileModified},
		{Path: "test/atoms/Avatar.test.tsx", State: FileMissing},
		{Path: "src/atoms/Avatar/index.ts", State: FileClean},
	}, avatar.States)

	hook := result.Entries[1]
	assert.Equal(t, "hook", hook.Generator)
	assert.Equal(t, FileClean, hook.States[0].State)
}

func TestList_Empty(t *testing.T) {
	f := newFixture(t)

	result, err := f.engine.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

type failingRenderer struct{}

func (failingRenderer) Render(string, map[string]any) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestGenerate_RenderFailureStopsExecution(t *testing.T) {
	fs := fsops.NewMemFS()
	eng := New(fs, failingRenderer{}, hash.NewSHA256Hasher(), clock.NewFakeClock(epoch),
		manifest.NewFileStore(fs, manifestPath), planner.DefaultLayout())

	result, err := eng.GenerateComponent(context.Background(), componentRequest("Avatar", "atom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render template component")
	assert.Empty(t, result.Applied)

	exists, err := fs.Exists("src/atoms/index.ts")
	require.NoError(t, err)
	assert.False(t, exists)
}
