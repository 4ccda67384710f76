package pdb

import "djdb/internal/byteio"

// TrackRow is the largest row type: the track's own metadata plus every
// foreign key a track can carry.
//
// Fixed layout (all little-endian, offsets relative to the row start):
//
//	0  u16  unused
//	2  u16  unused
//	4  u32  id
//	8  u32  flags
//	12 u32  artist_id
//	16 u32  composer_id
//	20 u32  original_artist_id
//	24 u32  remixer_id
//	28 u32  album_id
//	32 u32  genre_id
//	36 u32  label_id
//	40 u32  key_id
//	44 u32  color_id
//	48 u32  artwork_id
//	52 u16  tempo          (BPM x 100)
//	54 u32  duration       (seconds)
//	58 u32  sample_rate
//	62 u32  sample_depth
//	66 u32  bit_rate
//	70 u32  play_count
//	74 u8   rating
//	75 u8   disc_number
//	76 u16  track_number
//	78 u16  year
//	80 u8   autoload_hot_cues
//	81 u8   padding
//	82 u16  ofs_date_added   (DeviceSqlString)
//	84 u16  ofs_title
//	86 u16  ofs_comment
//	88 u16  ofs_file_path
//	90 u16  ofs_analysis_path
//	92 u16  ofs_release_date
//	94 u16  ofs_filename
//	96 u16  ofs_isrc
//	98 u16  ofs_texter
//	100 u16 ofs_mix_name
//	102 u16 ofs_kuvo_public
const trackRowFixedSize = 104

type TrackRow struct {
	ID uint32

	ArtistID         uint32
	ComposerID       uint32
	OriginalArtistID uint32
	RemixerID        uint32
	AlbumID          uint32
	GenreID          uint32
	LabelID          uint32
	KeyID            uint32
	ColorID          uint32
	ArtworkID        uint32

	Tempo           uint16 // BPM x 100
	DurationSeconds uint32
	SampleRate      uint32
	SampleDepth     uint32
	BitRate         uint32
	PlayCount       uint32
	Rating          uint8
	DiscNumber      uint8
	TrackNumber     uint16
	Year            uint16
	AutoloadHotCues bool

	DateAdded    string
	Title        string
	Comment      string
	FilePath     string
	AnalysisPath string
	ReleaseDate  string
	Filename     string
	ISRC         string
	Texter       string
	MixName      string
	KuvoPublic   string
}

func (r *TrackRow) RowID() uint32 { return r.ID }

func decodeTrackRow(src *byteio.Source, off int, warnf Warnf) (Row, error) {
	id, err := src.ReadU32LE(off + 4)
	if err != nil {
		return nil, &MalformedRow{Offset: off, Reason: "truncated id"}
	}

	readU32 := func(o int) (uint32, error) {
		v, err := src.ReadU32LE(off + o)
		if err != nil {
			return 0, &MalformedRow{Offset: off, Reason: "truncated fixed field"}
		}
		return v, nil
	}
	readU16 := func(o int) (uint16, error) {
		v, err := src.ReadU16LE(off + o)
		if err != nil {
			return 0, &MalformedRow{Offset: off, Reason: "truncated fixed field"}
		}
		return v, nil
	}
	readU8 := func(o int) (uint8, error) {
		v, err := src.ReadU8(off + o)
		if err != nil {
			return 0, &MalformedRow{Offset: off, Reason: "truncated fixed field"}
		}
		return v, nil
	}

	r := &TrackRow{ID: id}
	var e error
	fields := []struct {
		off int
		dst *uint32
	}{
		{12, &r.ArtistID}, {16, &r.ComposerID}, {20, &r.OriginalArtistID},
		{24, &r.RemixerID}, {28, &r.AlbumID}, {32, &r.GenreID},
		{36, &r.LabelID}, {40, &r.KeyID}, {44, &r.ColorID}, {48, &r.ArtworkID},
	}
	for _, f := range fields {
		if *f.dst, e = readU32(f.off); e != nil {
			return nil, e
		}
	}

	if r.Tempo, e = readU16(52); e != nil {
		return nil, e
	}
	if r.DurationSeconds, e = readU32(54); e != nil {
		return nil, e
	}
	if r.SampleRate, e = readU32(58); e != nil {
		return nil, e
	}
	if r.SampleDepth, e = readU32(62); e != nil {
		return nil, e
	}
	if r.BitRate, e = readU32(66); e != nil {
		return nil, e
	}
	if r.PlayCount, e = readU32(70); e != nil {
		return nil, e
	}
	if r.Rating, e = readU8(74); e != nil {
		return nil, e
	}
	if r.DiscNumber, e = readU8(75); e != nil {
		return nil, e
	}
	if r.TrackNumber, e = readU16(76); e != nil {
		return nil, e
	}
	if r.Year, e = readU16(78); e != nil {
		return nil, e
	}
	autoload, e := readU8(80)
	if e != nil {
		return nil, e
	}
	r.AutoloadHotCues = autoload != 0

	strOffsets := map[int]*string{
		82:  &r.DateAdded,
		84:  &r.Title,
		86:  &r.Comment,
		88:  &r.FilePath,
		90:  &r.AnalysisPath,
		92:  &r.ReleaseDate,
		94:  &r.Filename,
		96:  &r.ISRC,
		98:  &r.Texter,
		100: &r.MixName,
		102: &r.KuvoPublic,
	}
	for fieldOff, dst := range strOffsets {
		ofs, e := readU16(fieldOff)
		if e != nil {
			return nil, e
		}
		*dst = decodeString(src, off, ofs, warnf)
	}

	return r, nil
}
