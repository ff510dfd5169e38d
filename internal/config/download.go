package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Download collects the flags of the download command: output placement,
// transfer limits, backend selection and the locations of the external
// tools.
type Download struct {
	Output       string
	DestDir      string
	Resume       bool
	ExcludeChars string
	Proxy        string
	Ratelimit    int
	Duration     int

	Backends    []string
	Title       string
	Bitrate     int
	FlavorID    string
	Ext         string
	AudioOnly   bool
	LongProbe   bool
	Pipe        bool
	SubtitleURL string
	RtmpArgs    []string

	FFmpeg   string
	Wget     string
	Rtmpdump string
	HDS      []string
}

func (Download) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().StringP("output", "o", "", "explicit output filename")
	if err := viper.BindPFlag("output", cmd.PersistentFlags().Lookup("output")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("destdir", "", "save files into this directory")
	if err := viper.BindPFlag("destdir", cmd.PersistentFlags().Lookup("destdir")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("resume", false, "resume a partial download")
	if err := viper.BindPFlag("resume", cmd.PersistentFlags().Lookup("resume")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("excludechars", "*/|", "characters to be replaced in output filenames")
	if err := viper.BindPFlag("excludechars", cmd.PersistentFlags().Lookup("excludechars")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("proxy", "", "HTTP(S) proxy for the download")
	if err := viper.BindPFlag("proxy", cmd.PersistentFlags().Lookup("proxy")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("ratelimit", 0, "maximum bandwidth in kB/s")
	if err := viper.BindPFlag("ratelimit", cmd.PersistentFlags().Lookup("ratelimit")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("duration", 0, "record only the first N seconds")
	if err := viper.BindPFlag("duration", cmd.PersistentFlags().Lookup("duration")); err != nil {
		return err
	}

	cmd.PersistentFlags().StringSlice("backend", nil, "backends to try, in order of preference")
	if err := viper.BindPFlag("backend", cmd.PersistentFlags().Lookup("backend")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("title", "", "clip title used for the output filename")
	if err := viper.BindPFlag("title", cmd.PersistentFlags().Lookup("title")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("bitrate", 0, "stream bitrate to select")
	if err := viper.BindPFlag("bitrate", cmd.PersistentFlags().Lookup("bitrate")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("flavor", "", "stream flavor id")
	if err := viper.BindPFlag("flavor", cmd.PersistentFlags().Lookup("flavor")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("ext", "", "output file extension, including the dot")
	if err := viper.BindPFlag("ext", cmd.PersistentFlags().Lookup("ext")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("audio-only", false, "extract only the audio track")
	if err := viper.BindPFlag("audio-only", cmd.PersistentFlags().Lookup("audio-only")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("long-probe", false, "probe the stream longer before downloading")
	if err := viper.BindPFlag("long-probe", cmd.PersistentFlags().Lookup("long-probe")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("pipe", false, "stream to stdout instead of a file")
	if err := viper.BindPFlag("pipe", cmd.PersistentFlags().Lookup("pipe")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("subtitle-url", "", "mux this subtitle stream when piping")
	if err := viper.BindPFlag("subtitle-url", cmd.PersistentFlags().Lookup("subtitle-url")); err != nil {
		return err
	}

	cmd.PersistentFlags().StringSlice("rtmp-arg", nil, "extra rtmpdump arguments from the stream metadata")
	if err := viper.BindPFlag("rtmp-arg", cmd.PersistentFlags().Lookup("rtmp-arg")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("ffmpeg", "ffmpeg", "ffmpeg binary")
	if err := viper.BindPFlag("ffmpeg", cmd.PersistentFlags().Lookup("ffmpeg")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("wget", "wget", "wget binary")
	if err := viper.BindPFlag("wget", cmd.PersistentFlags().Lookup("wget")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("rtmpdump", "rtmpdump", "rtmpdump binary")
	if err := viper.BindPFlag("rtmpdump", cmd.PersistentFlags().Lookup("rtmpdump")); err != nil {
		return err
	}

	cmd.PersistentFlags().StringSlice("adobehds", []string{"php", "AdobeHDS.php"}, "AdobeHDS.php command")
	if err := viper.BindPFlag("adobehds", cmd.PersistentFlags().Lookup("adobehds")); err != nil {
		return err
	}

	return nil
}

func (c *Download) Set() {
	c.Output = viper.GetString("output")
	c.DestDir = viper.GetString("destdir")
	c.Resume = viper.GetBool("resume")
	c.ExcludeChars = viper.GetString("excludechars")
	c.Proxy = viper.GetString("proxy")
	c.Ratelimit = viper.GetInt("ratelimit")
	c.Duration = viper.GetInt("duration")

	c.Backends = viper.GetStringSlice("backend")
	c.Title = viper.GetString("title")
	c.Bitrate = viper.GetInt("bitrate")
	c.FlavorID = viper.GetString("flavor")
	c.Ext = viper.GetString("ext")
	c.AudioOnly = viper.GetBool("audio-only")
	c.LongProbe = viper.GetBool("long-probe")
	c.Pipe = viper.GetBool("pipe")
	c.SubtitleURL = viper.GetString("subtitle-url")
	c.RtmpArgs = viper.GetStringSlice("rtmp-arg")

	c.FFmpeg = viper.GetString("ffmpeg")
	c.Wget = viper.GetString("wget")
	c.Rtmpdump = viper.GetString("rtmpdump")
	c.HDS = viper.GetStringSlice("adobehds")
}
