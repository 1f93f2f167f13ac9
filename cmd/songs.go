package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/songhub/internal/catalog"
	"github.com/desertthunder/songhub/internal/formatter"
	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/pages"
	"github.com/desertthunder/songhub/internal/session"
	"github.com/urfave/cli/v3"
)

// SongsList fetches and prints the catalog.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	page, err := r.enter(ctx, pages.KindSongs, nil)
	if err != nil {
		return err
	}

	songs := page.Songs()
	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s (%d)", page.Kind().Title(), len(songs)))
	if len(songs) == 0 {
		return r.writePlain("%s\n", pages.MsgNoSongs)
	}
	return r.writePlain("%s\n", formatter.Table(songs))
}

// SongsAdd creates a song. Every field is required.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	deps, err := r.deps(ctx, nil)
	if err != nil {
		return err
	}

	song := models.Song{
		Name:     cmd.String("name"),
		Genre:    cmd.String("genre"),
		Language: cmd.String("language"),
		Keyword:  cmd.String("keyword"),
	}

	created, err := pages.New(pages.KindAdd, deps).Create(ctx, song)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Added %q (%s, %s, %s)\n", created.Name, created.Genre, created.Language, created.Keyword)
}

// SongsRemove removes every song with the given name.
//
// The catalog is fetched first so the number of local matches can be reported. A failed fetch is only
// logged; the removal itself decides the outcome.
func (r *Runner) SongsRemove(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")

	deps, err := r.deps(ctx, nil)
	if err != nil {
		return err
	}

	page := pages.New(pages.KindRemove, deps)
	if err := page.Enter(ctx); err != nil {
		if _, ok := session.AsRedirect(err); ok {
			return err
		}
		r.logger.Warn("could not fetch songs before removal", "err", err)
	}

	matches := 0
	for _, s := range page.Songs() {
		if s.Name == name {
			matches++
		}
	}

	detail, err := page.Delete(ctx, name)
	if err != nil {
		return err
	}

	r.writePlain("✓ %s\n", detail)
	if matches > 1 {
		r.writePlain("%d songs shared that name and were all removed.\n", matches)
	}
	return nil
}

// SongsFind fetches the catalog, filters it and prints a random sample of the matches.
func (r *Runner) SongsFind(ctx context.Context, cmd *cli.Command) error {
	var sampler *catalog.Sampler
	if cmd.IsSet("seed") {
		sampler = catalog.NewSeededSampler(uint64(cmd.Int("seed")), r.sampler.Size())
	}

	page, err := r.enter(ctx, pages.KindFind, sampler)
	if err != nil {
		return err
	}

	result := page.Search(catalog.Criteria{
		Name:     cmd.String("name"),
		Genre:    cmd.String("genre"),
		Language: cmd.String("language"),
	})

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	if result.NoMatches {
		return r.writePlain("%s\n", pages.MsgNoSongs)
	}

	r.writePlainHeader(fmt.Sprintf("%d of %d matching songs", len(result.Display), len(result.Filtered)))
	return r.writePlain("%s\n", formatter.Table(result.Display))
}

// SongsExport fetches the catalog and writes it in the requested format to stdout or a file.
// An output directory gets a songs.<format> file inside it.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	page, err := r.enter(ctx, pages.KindSongs, nil)
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" {
		return page.Export(r.output, format)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, formatter.DefaultFilename("songs", format))
	}

	if err := formatter.WriteExport(page.Songs(), format, page.Kind().Title(), path); err != nil {
		return err
	}
	r.logger.Info("exported songs", "path", path, "format", format, "count", len(page.Songs()))
	return r.writePlain("✓ Exported %d songs to %s\n", len(page.Songs()), path)
}

type songOptions struct {
	Genres    []string `json:"genres"`
	Languages []string `json:"languages"`
	Keywords  []string `json:"keywords"`
}

// SongsOptions prints the values accepted for a song's genre, language and keyword.
func (r *Runner) SongsOptions(ctx context.Context, cmd *cli.Command) error {
	opts := songOptions{Genres: models.Genres, Languages: models.Languages, Keywords: models.Keywords}
	if cmd.Bool("json") {
		return r.writeJSON(opts, true)
	}

	r.writePlain("Genres:    %s\n", strings.Join(opts.Genres, ", "))
	r.writePlain("Languages: %s\n", strings.Join(opts.Languages, ", "))
	r.writePlain("Keywords:  %s\n", strings.Join(opts.Keywords, ", "))
	return nil
}
