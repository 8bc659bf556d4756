package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"moviedb/aka"
	"moviedb/crew"
	"moviedb/episode"
	"moviedb/person"
	"moviedb/principal"
	"moviedb/title"
)

// akaSep separates the types and attributes of title.akas.
const akaSep = "\x02"

func parseTitle(r record) (title.Title, error) {
	t := title.Title{
		Tconst:        r.str("tconst"),
		TitleType:     r.str("titleType"),
		PrimaryTitle:  r.str("primaryTitle"),
		OriginalTitle: r.str("originalTitle"),
		IsAdult:       r.boolean("isAdult"),
		Genres:        lower(r.list("genres", ",")),
	}
	if t.OriginalTitle == "" {
		t.OriginalTitle = t.PrimaryTitle
	}
	var err error
	if t.StartYear, err = r.optInt("startYear"); err != nil {
		return t, err
	}
	if t.EndYear, err = r.optInt("endYear"); err != nil {
		return t, err
	}
	if t.RuntimeMinutes, err = r.optInt("runtimeMinutes"); err != nil {
		return t, err
	}
	return t, t.Validate()
}

func parsePerson(r record) (person.Person, error) {
	p := person.Person{
		Nconst:            r.str("nconst"),
		PrimaryName:       r.str("primaryName"),
		PrimaryProfession: r.list("primaryProfession", ","),
		KnownForTitles:    r.list("knownForTitles", ","),
	}
	var err error
	if p.BirthYear, err = r.optInt("birthYear"); err != nil {
		return p, err
	}
	if p.DeathYear, err = r.optInt("deathYear"); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func parsePrincipal(r record) (principal.Principal, error) {
	p := principal.Principal{
		Tconst:     r.str("tconst"),
		Nconst:     r.str("nconst"),
		Category:   r.str("category"),
		Job:        r.optStr("job"),
		Characters: []string{},
	}
	ordering, err := r.optInt("ordering")
	if err != nil {
		return p, err
	}
	if ordering == nil {
		return p, fmt.Errorf("line %d: ordering: missing", r.line)
	}
	p.Ordering = *ordering

	// characters is stored as a JSON array literal.
	if raw := r.raw("characters"); raw != null && raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Characters); err != nil {
			return p, fmt.Errorf("line %d: characters: %w", r.line, err)
		}
	}
	return p, p.Validate()
}

func parseCrew(r record) (crew.Crew, error) {
	c := crew.Crew{
		Tconst:    r.str("tconst"),
		Directors: r.list("directors", ","),
		Writers:   r.list("writers", ","),
	}
	if c.Tconst == "" {
		return c, fmt.Errorf("line %d: tconst: missing", r.line)
	}
	return c, nil
}

func parseAka(r record) (aka.Aka, error) {
	a := aka.Aka{
		TitleID:         r.str("titleId"),
		Title:           r.str("title"),
		Region:          r.optStr("region"),
		Language:        r.optStr("language"),
		Types:           r.list("types", akaSep),
		Attributes:      r.list("attributes", akaSep),
		IsOriginalTitle: r.boolean("isOriginalTitle"),
	}
	ordering, err := r.optInt("ordering")
	if err != nil {
		return a, err
	}
	if a.TitleID == "" || ordering == nil {
		return a, fmt.Errorf("line %d: titleId and ordering are required", r.line)
	}
	a.Ordering = *ordering
	return a, nil
}

func parseEpisode(r record) (episode.Episode, error) {
	e := episode.Episode{
		Tconst:       r.str("tconst"),
		ParentTconst: r.str("parentTconst"),
	}
	var err error
	if e.SeasonNumber, err = r.optInt("seasonNumber"); err != nil {
		return e, err
	}
	if e.EpisodeNumber, err = r.optInt("episodeNumber"); err != nil {
		return e, err
	}
	if e.Tconst == "" || e.ParentTconst == "" {
		return e, fmt.Errorf("line %d: tconst and parentTconst are required", r.line)
	}
	return e, nil
}

func lower(ss []string) []string {
	for i, s := range ss {
		ss[i] = strings.ToLower(s)
	}
	return ss
}
