package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstRecord(t *testing.T, s string) record {
	t.Helper()
	rec, err := reader(t, s).Read()
	require.NoError(t, err)
	return rec
}

func TestParseTitle(t *testing.T) {
	r := reader(t, basics)

	rec, err := r.Read()
	require.NoError(t, err)
	got, err := parseTitle(rec)
	require.NoError(t, err)
	assert.Equal(t, "tt0000001", got.Tconst)
	assert.Equal(t, "short", got.TitleType)
	assert.False(t, got.IsAdult)
	assert.Equal(t, 1894, *got.StartYear)
	assert.Nil(t, got.EndYear)
	assert.Equal(t, 1, *got.RuntimeMinutes)
	assert.Equal(t, []string{"documentary", "short"}, got.Genres)

	// A missing originalTitle falls back to primaryTitle.
	rec, err = r.Read()
	require.NoError(t, err)
	got, err = parseTitle(rec)
	require.NoError(t, err)
	assert.Equal(t, got.PrimaryTitle, got.OriginalTitle)

	rec, err = r.Read()
	require.NoError(t, err)
	_, err = parseTitle(rec)
	assert.Error(t, err)
}

func TestParseTitleRejectsBadYears(t *testing.T) {
	rec := firstRecord(t, "tconst\ttitleType\tprimaryTitle\toriginalTitle\tisAdult\tstartYear\tendYear\truntimeMinutes\tgenres\n"+
		"tt0000009\ttvSeries\tX\tX\t1\t2000\t1999\t\\N\t\\N\n")
	_, err := parseTitle(rec)
	assert.ErrorContains(t, err, "endYear")
}

func TestParsePerson(t *testing.T) {
	rec := firstRecord(t, "nconst\tprimaryName\tbirthYear\tdeathYear\tprimaryProfession\tknownForTitles\n"+
		"nm0000001\tFred Astaire\t1899\t1987\tactor,miscellaneous,producer\ttt0072308,tt0050419\n")
	got, err := parsePerson(rec)
	require.NoError(t, err)
	assert.Equal(t, "Fred Astaire", got.PrimaryName)
	assert.Equal(t, 1899, *got.BirthYear)
	assert.Equal(t, 1987, *got.DeathYear)
	assert.Equal(t, []string{"actor", "miscellaneous", "producer"}, got.PrimaryProfession)
	assert.Equal(t, []string{"tt0072308", "tt0050419"}, got.KnownForTitles)

	rec = firstRecord(t, "nconst\tprimaryName\tbirthYear\tdeathYear\tprimaryProfession\tknownForTitles\n"+
		"nm0000002\t\\N\tx\t\\N\t\\N\t\\N\n")
	_, err = parsePerson(rec)
	assert.Error(t, err)
}

func TestParsePrincipal(t *testing.T) {
	const header = "tconst\tordering\tnconst\tcategory\tjob\tcharacters\n"

	got, err := parsePrincipal(firstRecord(t, header+"tt0000005\t1\tnm0443482\tactor\t\\N\t[\"Blacksmith\",\"Assistant\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Ordering)
	assert.Nil(t, got.Job)
	assert.Equal(t, []string{"Blacksmith", "Assistant"}, got.Characters)

	got, err = parsePrincipal(firstRecord(t, header+"tt0000005\t3\tnm0005690\tproducer\tproducer\t\\N\n"))
	require.NoError(t, err)
	assert.Equal(t, "producer", *got.Job)
	assert.Equal(t, []string{}, got.Characters)

	_, err = parsePrincipal(firstRecord(t, header+"tt0000005\t\\N\tnm0005690\tproducer\t\\N\t\\N\n"))
	assert.EqualError(t, err, "line 2: ordering: missing")

	_, err = parsePrincipal(firstRecord(t, header+"tt0000005\t2\tnm0005690\tjuggler\t\\N\t\\N\n"))
	assert.ErrorContains(t, err, "category")

	_, err = parsePrincipal(firstRecord(t, header+"tt0000005\t2\tnm0005690\tactor\t\\N\t[broken\n"))
	assert.ErrorContains(t, err, "characters")
}

func TestParseCrew(t *testing.T) {
	got, err := parseCrew(firstRecord(t, "tconst\tdirectors\twriters\ntt0000009\tnm0085156\tnm0085156,nm0000005\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"nm0085156"}, got.Directors)
	assert.Equal(t, []string{"nm0085156", "nm0000005"}, got.Writers)

	_, err = parseCrew(firstRecord(t, "tconst\tdirectors\twriters\n\\N\t\\N\t\\N\n"))
	assert.Error(t, err)
}

func TestParseAka(t *testing.T) {
	const header = "titleId\tordering\ttitle\tregion\tlanguage\ttypes\tattributes\tisOriginalTitle\n"

	got, err := parseAka(firstRecord(t, header+"tt0000001\t1\tKarmencita\tRU\t\\N\timdbDisplay\tliteral title\t0\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Ordering)
	assert.Equal(t, "RU", *got.Region)
	assert.Nil(t, got.Language)
	assert.False(t, got.IsOriginalTitle)

	got, err = parseAka(firstRecord(t, header+"tt0000001\t2\tCarmencita\t\\N\t\\N\toriginal\timdbDisplay\x02working\t1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"original"}, got.Types)
	assert.Equal(t, []string{"imdbDisplay", "working"}, got.Attributes)
	assert.True(t, got.IsOriginalTitle)

	_, err = parseAka(firstRecord(t, header+"tt0000001\t\\N\tCarmencita\t\\N\t\\N\t\\N\t\\N\t0\n"))
	assert.Error(t, err)
}

func TestParseEpisode(t *testing.T) {
	const header = "tconst\tparentTconst\tseasonNumber\tepisodeNumber\n"

	got, err := parseEpisode(firstRecord(t, header+"tt0041951\ttt0041038\t1\t9\n"))
	require.NoError(t, err)
	assert.Equal(t, "tt0041038", got.ParentTconst)
	assert.Equal(t, 1, *got.SeasonNumber)
	assert.Equal(t, 9, *got.EpisodeNumber)

	got, err = parseEpisode(firstRecord(t, header+"tt0042816\ttt0989125\t\\N\t\\N\n"))
	require.NoError(t, err)
	assert.Nil(t, got.SeasonNumber)

	_, err = parseEpisode(firstRecord(t, header+"tt0042816\t\\N\t1\t1\n"))
	assert.Error(t, err)
}
