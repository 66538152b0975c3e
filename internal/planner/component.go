package planner

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/ConstCodeX/structurex/internal/answers"
	"github.com/ConstCodeX/structurex/internal/tier"
)

// Template identifiers resolved by the renderer.
const (
	TemplateComponent = "component"
	TemplateContainer = "container"
	TemplateTest      = "test"
	TemplateHook      = "hook"
	TemplatePresenter = "presenter"
)

// Generator names.
const (
	GeneratorComponent = "component"
	GeneratorHook      = "hook"
	GeneratorPresenter = "presenter"
)

// PlanComponent generates the ordered action list for a component request.
//
// The request must come from answers.BuildRequest; an unknown tier or an
// ordering violation is a programming error and panics.
func PlanComponent(req *answers.ComponentRequest, layout Layout) *Plan {
	def := tier.MustLookup(req.Tier)
	name := req.Name

	folderDir := path.Join(layout.SrcDir, def.Folder)
	componentDir := path.Join(folderDir, name)
	componentFile := name + "." + def.Suffix

	plan := NewPlan(GeneratorComponent, name)
	plan.Tier = string(def.Key)

	// Component body always overwrites so template changes propagate on re-run
	plan.AddAction(Action{
		Kind: KindWrite,
		Path: path.Join(componentDir, componentFile+"."+layout.ComponentExt),
		Source: Source{
			Template: TemplateComponent,
			Data:     map[string]any{"name": name, "base": def.Base, "suffix": def.Suffix},
		},
		Overwrite: true,
	})

	if req.WithContainer {
		plan.AddAction(Action{
			Kind: KindWrite,
			Path: path.Join(componentDir, name+".ctn."+layout.ScriptExt),
			Source: Source{
				Template: TemplateContainer,
				Data:     map[string]any{"name": name, "suffix": def.Suffix},
			},
			Overwrite: true,
		})
	}

	if req.WithTest {
		testPath := path.Join(layout.TestDir, def.Folder, name+".test."+layout.ComponentExt)
		plan.AddAction(Action{
			Kind: KindWrite,
			Path: testPath,
			Source: Source{
				Template: TemplateTest,
				Data: map[string]any{
					"name":   name,
					"folder": def.Folder,
					"suffix": def.Suffix,
					"import": ImportPath(path.Dir(testPath), path.Join(componentDir, componentFile)),
				},
			},
			Overwrite: true,
		})
	}

	// Local barrel: owned by this component, never merged
	plan.AddAction(Action{
		Kind:   KindEnsureExists,
		Path:   path.Join(componentDir, "index."+layout.ScriptExt),
		Source: Source{Literal: ExportLine("./"+componentFile) + "\n"},
	})

	folderBarrel := path.Join(folderDir, "index."+layout.ScriptExt)
	plan.AddAction(Action{
		Kind:   KindEnsureExists,
		Path:   folderBarrel,
		Source: Source{Literal: layout.FolderSeed()},
	})
	plan.AddAction(Action{
		Kind:   KindMergeAppend,
		Path:   folderBarrel,
		Marker: layout.Marker,
		Line:   ExportLine("./" + name),
		Seed:   layout.FolderSeed(),
	})

	rootBarrel := path.Join(layout.SrcDir, "index."+layout.ScriptExt)
	plan.AddAction(Action{
		Kind:   KindEnsureExists,
		Path:   rootBarrel,
		Source: Source{Literal: layout.RootSeed()},
	})
	plan.AddAction(Action{
		Kind:   KindMergeAppend,
		Path:   rootBarrel,
		Marker: layout.Marker,
		Line:   ExportLine("./" + path.Join(def.Folder, name)),
		Seed:   layout.RootSeed(),
	})

	mustValidate(plan)
	return plan
}

// PlanHook generates the action list for a reusable hook named use<Name>.
// The name must already have passed answers.ValidateName.
func PlanHook(name string, layout Layout) *Plan {
	plan := NewPlan(GeneratorHook, name)
	plan.AddAction(Action{
		Kind: KindWrite,
		Path: path.Join(layout.SrcDir, "hooks", "use"+name+"."+layout.ScriptExt),
		Source: Source{
			Template: TemplateHook,
			Data:     map[string]any{"name": name},
		},
	})
	return plan
}

// PlanPresenter generates the action list for a presenter named <Name>Presenter.
// The name must already have passed answers.ValidateName.
func PlanPresenter(name string, layout Layout) *Plan {
	plan := NewPlan(GeneratorPresenter, name)
	plan.AddAction(Action{
		Kind: KindWrite,
		Path: path.Join(layout.SrcDir, "presenters", name+"Presenter."+layout.ScriptExt),
		Source: Source{
			Template: TemplatePresenter,
			Data:     map[string]any{"name": name},
		},
	})
	return plan
}

// ImportPath returns the module specifier that resolves target from a file
// in dir. Both are slash-separated and relative to the project root.
func ImportPath(dir, target string) string {
	rel, err := filepath.Rel(filepath.FromSlash(dir), filepath.FromSlash(target))
	if err != nil {
		return "./" + target
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

func mustValidate(plan *Plan) {
	if err := plan.Validate(); err != nil {
		panic("planner: " + err.Error())
	}
}
