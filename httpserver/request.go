package httpserver

import (
	"moviedb/aka"
	"moviedb/crew"
	"moviedb/episode"
	"moviedb/person"
	"moviedb/principal"
	"moviedb/title"
)

type CreateTitleRequest struct {
	Tconst         string     `json:"tconst" validate:"required,tconst"`
	TitleType      string     `json:"titleType" validate:"required,titletype"`
	PrimaryTitle   string     `json:"primaryTitle" validate:"required,notblank,max=500"`
	OriginalTitle  string     `json:"originalTitle" validate:"max=500"`
	IsAdult        bool       `json:"isAdult"`
	StartYear      *int       `json:"startYear" validate:"omitnil,min=0"`
	EndYear        *int       `json:"endYear" validate:"omitnil,min=0"`
	RuntimeMinutes *int       `json:"runtimeMinutes" validate:"omitnil,min=0"`
	Genres         StringList `json:"genres" validate:"max=3,dive,notblank,excludes=0x2C"`
}

func (r CreateTitleRequest) ToTitle() title.Title {
	original := r.OriginalTitle
	if original == "" {
		original = r.PrimaryTitle
	}
	return title.Title{
		Tconst:         r.Tconst,
		TitleType:      r.TitleType,
		PrimaryTitle:   r.PrimaryTitle,
		OriginalTitle:  original,
		IsAdult:        r.IsAdult,
		StartYear:      r.StartYear,
		EndYear:        r.EndYear,
		RuntimeMinutes: r.RuntimeMinutes,
		Genres:         r.Genres,
	}
}

type UpdateTitleRequest struct {
	TitleType      *string    `json:"titleType" validate:"omitnil,titletype"`
	PrimaryTitle   *string    `json:"primaryTitle" validate:"omitnil,notblank,max=500"`
	OriginalTitle  *string    `json:"originalTitle" validate:"omitnil,max=500"`
	IsAdult        *bool      `json:"isAdult"`
	StartYear      *int       `json:"startYear" validate:"omitnil,min=0"`
	EndYear        *int       `json:"endYear" validate:"omitnil,min=0"`
	RuntimeMinutes *int       `json:"runtimeMinutes" validate:"omitnil,min=0"`
	Genres         StringList `json:"genres" validate:"omitempty,max=3,dive,notblank,excludes=0x2C"`
}

func (r UpdateTitleRequest) ToPatch() title.Patch {
	return title.Patch{
		TitleType:      r.TitleType,
		PrimaryTitle:   r.PrimaryTitle,
		OriginalTitle:  r.OriginalTitle,
		IsAdult:        r.IsAdult,
		StartYear:      r.StartYear,
		EndYear:        r.EndYear,
		RuntimeMinutes: r.RuntimeMinutes,
		Genres:         r.Genres,
	}
}

type CreatePersonRequest struct {
	Nconst            string     `json:"nconst" validate:"required,nconst"`
	PrimaryName       string     `json:"primaryName" validate:"required,notblank,max=300"`
	BirthYear         *int       `json:"birthYear" validate:"omitnil,min=0"`
	DeathYear         *int       `json:"deathYear" validate:"omitnil,min=0"`
	PrimaryProfession StringList `json:"primaryProfession" validate:"max=3,dive,notblank"`
	KnownForTitles    StringList `json:"knownForTitles" validate:"dive,tconst"`
}

func (r CreatePersonRequest) ToPerson() person.Person {
	return person.Person{
		Nconst:            r.Nconst,
		PrimaryName:       r.PrimaryName,
		BirthYear:         r.BirthYear,
		DeathYear:         r.DeathYear,
		PrimaryProfession: r.PrimaryProfession,
		KnownForTitles:    r.KnownForTitles,
	}
}

type UpdatePersonRequest struct {
	PrimaryName       *string    `json:"primaryName" validate:"omitnil,notblank,max=300"`
	BirthYear         *int       `json:"birthYear" validate:"omitnil,min=0"`
	DeathYear         *int       `json:"deathYear" validate:"omitnil,min=0"`
	PrimaryProfession StringList `json:"primaryProfession" validate:"omitempty,max=3,dive,notblank"`
	KnownForTitles    StringList `json:"knownForTitles" validate:"omitempty,dive,tconst"`
}

func (r UpdatePersonRequest) ToPatch() person.Patch {
	return person.Patch{
		PrimaryName:       r.PrimaryName,
		BirthYear:         r.BirthYear,
		DeathYear:         r.DeathYear,
		PrimaryProfession: r.PrimaryProfession,
		KnownForTitles:    r.KnownForTitles,
	}
}

type CreatePrincipalRequest struct {
	Tconst     string     `json:"tconst" validate:"required,tconst"`
	Nconst     string     `json:"nconst" validate:"required,nconst"`
	Ordering   *int       `json:"ordering" validate:"required,min=1"`
	Category   string     `json:"category" validate:"required,category"`
	Job        *string    `json:"job" validate:"omitnil,notblank"`
	Characters StringList `json:"characters" validate:"dive,notblank"`
}

func (r CreatePrincipalRequest) ToPrincipal() principal.Principal {
	p := principal.Principal{
		Tconst:     r.Tconst,
		Nconst:     r.Nconst,
		Category:   r.Category,
		Job:        r.Job,
		Characters: r.Characters,
	}
	if r.Ordering != nil {
		p.Ordering = *r.Ordering
	}
	return p
}

type UpdatePrincipalRequest struct {
	Category   *string    `json:"category" validate:"omitnil,category"`
	Job        *string    `json:"job" validate:"omitnil,notblank"`
	Characters StringList `json:"characters" validate:"omitempty,dive,notblank"`
}

func (r UpdatePrincipalRequest) ToPatch() principal.Patch {
	return principal.Patch{
		Category:   r.Category,
		Job:        r.Job,
		Characters: r.Characters,
	}
}

type CreateCrewRequest struct {
	Tconst    string     `json:"tconst" validate:"required,tconst"`
	Directors StringList `json:"directors" validate:"dive,nconst"`
	Writers   StringList `json:"writers" validate:"dive,nconst"`
}

func (r CreateCrewRequest) ToCrew() crew.Crew {
	return crew.Crew{
		Tconst:    r.Tconst,
		Directors: r.Directors,
		Writers:   r.Writers,
	}
}

type UpdateCrewRequest struct {
	Directors StringList `json:"directors" validate:"omitempty,dive,nconst"`
	Writers   StringList `json:"writers" validate:"omitempty,dive,nconst"`
}

func (r UpdateCrewRequest) ToPatch() crew.Patch {
	return crew.Patch{
		Directors: r.Directors,
		Writers:   r.Writers,
	}
}

type CrewMembersRequest struct {
	Nconsts StringList `json:"nconsts" validate:"required,min=1,dive,nconst"`
}

type CreateAkaRequest struct {
	TitleID         string     `json:"titleId" validate:"required,tconst"`
	Title           string     `json:"title" validate:"required,notblank,max=500"`
	Region          *string    `json:"region" validate:"omitnil,min=2,max=4"`
	Language        *string    `json:"language" validate:"omitnil,min=2,max=4"`
	Types           StringList `json:"types" validate:"dive,notblank"`
	Attributes      StringList `json:"attributes" validate:"dive,notblank"`
	IsOriginalTitle bool       `json:"isOriginalTitle"`
}

// ToAka leaves ordering unset; it is assigned on create.
func (r CreateAkaRequest) ToAka() aka.Aka {
	return aka.Aka{
		TitleID:         r.TitleID,
		Title:           r.Title,
		Region:          r.Region,
		Language:        r.Language,
		Types:           r.Types,
		Attributes:      r.Attributes,
		IsOriginalTitle: r.IsOriginalTitle,
	}
}

type UpdateAkaRequest struct {
	Title           *string    `json:"title" validate:"omitnil,notblank,max=500"`
	Region          *string    `json:"region" validate:"omitnil,min=2,max=4"`
	Language        *string    `json:"language" validate:"omitnil,min=2,max=4"`
	Types           StringList `json:"types" validate:"omitempty,dive,notblank"`
	Attributes      StringList `json:"attributes" validate:"omitempty,dive,notblank"`
	IsOriginalTitle *bool      `json:"isOriginalTitle"`
}

func (r UpdateAkaRequest) ToPatch() aka.Patch {
	return aka.Patch{
		Title:           r.Title,
		Region:          r.Region,
		Language:        r.Language,
		Types:           r.Types,
		Attributes:      r.Attributes,
		IsOriginalTitle: r.IsOriginalTitle,
	}
}

type CreateEpisodeRequest struct {
	Tconst        string `json:"tconst" validate:"required,tconst"`
	ParentTconst  string `json:"parentTconst" validate:"required,tconst"`
	SeasonNumber  *int   `json:"seasonNumber" validate:"omitnil,min=0"`
	EpisodeNumber *int   `json:"episodeNumber" validate:"omitnil,min=0"`
}

func (r CreateEpisodeRequest) ToEpisode() episode.Episode {
	return episode.Episode{
		Tconst:        r.Tconst,
		ParentTconst:  r.ParentTconst,
		SeasonNumber:  r.SeasonNumber,
		EpisodeNumber: r.EpisodeNumber,
	}
}

type UpdateEpisodeRequest struct {
	ParentTconst  *string `json:"parentTconst" validate:"omitnil,tconst"`
	SeasonNumber  *int    `json:"seasonNumber" validate:"omitnil,min=0"`
	EpisodeNumber *int    `json:"episodeNumber" validate:"omitnil,min=0"`
}

func (r UpdateEpisodeRequest) ToPatch() episode.Patch {
	return episode.Patch{
		ParentTconst:  r.ParentTconst,
		SeasonNumber:  r.SeasonNumber,
		EpisodeNumber: r.EpisodeNumber,
	}
}
