package synthesis

import (
	"context"

	"clipforge/internal/media/ffmpeg"
	"clipforge/internal/services"
	"clipforge/internal/session"
)

// mixedTrackName is the single intermediate the mixing stage produces.
const mixedTrackName = "mixed.aac"

// mixTracks reduces the downloaded audio tracks to one file capped at
// targetDuration seconds. Callers must skip this stage entirely when no audio
// inputs exist; an empty track list here is a programming error.
//
// One track is re-encoded with the fixed mix settings and trimmed to the cap;
// a short track keeps its natural length (no silence padding). Multiple
// tracks are amplitude-mixed with duration=first semantics, then the cap is
// applied on top.
func (p *Pipeline) mixTracks(ctx context.Context, sess *session.Session, tracks []string, targetDuration float64) (string, error) {
	if len(tracks) == 0 {
		return "", services.Wrap(services.ErrMix, "mix", "", "no audio tracks to mix", nil)
	}

	output, err := sess.Path(mixedTrackName)
	if err != nil {
		return "", services.Wrap(services.ErrMix, "mix", "allocate output", "", err)
	}

	if len(tracks) == 1 {
		spec := ffmpeg.TranscodeAudioSpec{
			Input:       tracks[0],
			Output:      output,
			Codec:       "aac",
			Bitrate:     p.cfg.Encoding.MixAudioBitrate,
			MaxDuration: targetDuration,
		}
		if err := p.engine.TranscodeAudio(ctx, spec); err != nil {
			return "", services.Wrap(services.ErrMix, "mix", "trim audio track", "", err)
		}
		return output, nil
	}

	spec := ffmpeg.MixSpec{
		Inputs:      tracks,
		Output:      output,
		Codec:       "aac",
		Bitrate:     p.cfg.Encoding.MixAudioBitrate,
		MaxDuration: targetDuration,
	}
	if err := p.engine.MixAudio(ctx, spec); err != nil {
		return "", services.Wrap(services.ErrMix, "mix", "mix audio tracks", "", err)
	}
	return output, nil
}
