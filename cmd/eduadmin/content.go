package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/render"
	"github.com/yungbote/eduadmin/internal/state"
)

// contentCmd binds one hierarchy resource to the list/get/create/update/
// delete subcommands. fields are the JSON keys exposed as flags, with
// underscores written as dashes.
type contentCmd[E domain.Entity] struct {
	name      string
	singular  string
	c         *state.Container[E]
	parentKey string
	fields    []string
	table     func([]E) string
}

func levelsCmd(s *state.Store) contentCmd[domain.EducationLevel] {
	return contentCmd[domain.EducationLevel]{
		name: "levels", singular: "education level", c: s.Levels,
		fields: []string{"name", "description"},
		table:  render.Levels,
	}
}

func classesCmd(s *state.Store) contentCmd[domain.Class] {
	return contentCmd[domain.Class]{
		name: "classes", singular: "class", c: s.Classes,
		parentKey: domain.LevelEducation.ParentKey(),
		fields:    []string{"name", "tagline", "image_link"},
		table:     render.Classes,
	}
}

func subjectsCmd(s *state.Store) contentCmd[domain.Subject] {
	return contentCmd[domain.Subject]{
		name: "subjects", singular: "subject", c: s.Subjects,
		parentKey: domain.LevelClass.ParentKey(),
		fields:    []string{"name", "tagline", "image_link", "image_prompt"},
		table:     render.Subjects,
	}
}

func chaptersCmd(s *state.Store) contentCmd[domain.Chapter] {
	return contentCmd[domain.Chapter]{
		name: "chapters", singular: "chapter", c: s.Chapters,
		parentKey: domain.LevelSubject.ParentKey(),
		fields:    []string{"name", "tagline", "image_link"},
		table:     render.Chapters,
	}
}

func topicsCmd(s *state.Store) contentCmd[domain.Topic] {
	return contentCmd[domain.Topic]{
		name: "topics", singular: "topic", c: s.Topics,
		parentKey: domain.LevelChapter.ParentKey(),
		fields:    []string{"name", "tagline", "image_link", "details"},
		table:     render.Topics,
	}
}

func flagName(field string) string { return strings.ReplaceAll(field, "_", "-") }

// fieldFlags registers one string flag per field and the parent flag when
// the resource has a parent. The returned map is keyed by flag name.
func (cmd contentCmd[E]) fieldFlags(fs *flag.FlagSet) map[string]*string {
	vals := make(map[string]*string, len(cmd.fields)+1)
	for _, f := range cmd.fields {
		vals[flagName(f)] = fs.String(flagName(f), "", "The "+cmd.singular+"'s "+strings.ReplaceAll(f, "_", " ")+".")
	}
	if cmd.parentKey != "" {
		vals["parent"] = fs.String("parent", "", "Parent id, sent as "+cmd.parentKey+".")
	}
	return vals
}

// jsonKey maps a flag name registered by fieldFlags back to its JSON key.
func (cmd contentCmd[E]) jsonKey(name string) string {
	if name == "parent" {
		return cmd.parentKey
	}
	return strings.ReplaceAll(name, "-", "_")
}

func (cmd contentCmd[E]) usage() string {
	u := "Usage: " + cmd.name + " list"
	if cmd.c.Resource().ListQuery {
		u += " [-limit N] [-name S]"
	}
	if cmd.parentKey != "" {
		u += " [-parent ID]"
	}
	return u + " | get -id ID | create [flags] | update -id ID [flags] | delete -id ID"
}

func runContent[E domain.Entity](ctx context.Context, cli *commandLine, cmd contentCmd[E], args []string) error {
	if len(args) == 0 {
		cli.println(cmd.usage())
		return errHelp
	}
	sub, rest := args[0], args[1:]
	fs := cli.flagSet(cmd.name + " " + sub)

	switch sub {
	case "list":
		var limit *int
		var name *string
		if cmd.c.Resource().ListQuery {
			limit = fs.Int("limit", state.DefaultListLimit, "Maximum number of records.")
			name = fs.String("name", "", "Only records whose name contains this.")
		}
		var parent *string
		if cmd.parentKey != "" {
			parent = fs.String("parent", "", "Only children of this parent id.")
		}
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		var items []E
		var err error
		if parent != nil && strings.TrimSpace(*parent) != "" {
			items, err = cmd.c.FetchByParent(ctx, *parent)
		} else {
			filter := state.ListFilter{}
			if limit != nil {
				filter.Limit, filter.Name = *limit, *name
			}
			items, err = cmd.c.FetchAll(ctx, filter)
		}
		if err != nil {
			return err
		}
		cli.println(cmd.table(items))
		return nil

	case "get":
		id := fs.String("id", "", "Record id.")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		if err := required(fs, *id); err != nil {
			return err
		}
		item, err := cmd.c.Get(ctx, *id)
		if err != nil {
			return err
		}
		cli.println(cmd.table([]E{item}))
		return nil

	case "create":
		vals := cmd.fieldFlags(fs)
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		body := make(map[string]string, len(vals))
		for name, v := range vals {
			body[cmd.jsonKey(name)] = strings.TrimSpace(*v)
		}
		created, err := cmd.c.Create(ctx, body)
		if err != nil {
			return err
		}
		cli.println(render.Success(fmt.Sprintf("Created %s %s.", cmd.singular, created.GetID())))

		// Creating into an empty list does not append, so always reload.
		var items []E
		if p := body[cmd.parentKey]; cmd.parentKey != "" && p != "" {
			items, err = cmd.c.FetchByParent(ctx, p)
		} else {
			items, err = cmd.c.FetchAll(ctx, state.ListFilter{})
		}
		if err != nil {
			return err
		}
		cli.println(cmd.table(items))
		return nil

	case "update":
		id := fs.String("id", "", "Record id.")
		vals := cmd.fieldFlags(fs)
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		if err := required(fs, *id); err != nil {
			return err
		}
		patch := map[string]string{}
		fs.Visit(func(f *flag.Flag) {
			if v, ok := vals[f.Name]; ok {
				patch[cmd.jsonKey(f.Name)] = strings.TrimSpace(*v)
			}
		})
		if len(patch) == 0 {
			fs.Usage()
			return errHelp
		}
		updated, err := cmd.c.Update(ctx, *id, patch)
		if err != nil {
			return err
		}
		cli.println(render.Success("Updated " + cmd.singular + " " + updated.GetID() + "."))
		cli.println(cmd.table([]E{updated}))
		return nil

	case "delete":
		id := fs.String("id", "", "Record id.")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		if err := required(fs, *id); err != nil {
			return err
		}
		if err := cmd.c.Delete(ctx, *id); err != nil {
			return err
		}
		cli.println(render.Success("Deleted " + cmd.singular + " " + strings.TrimSpace(*id) + "."))
		return nil

	default:
		cli.println(cmd.usage())
		return errHelp
	}
}
