// bb-rtmp-demo pushes a raw H.264 Annex-B elementary stream and/or a raw
// AAC (ADTS) stream to an RTMP URL using pkg/service. It stands in for
// the mobile encoder pipeline the original plugin fed from — out of
// scope for this repo (spec §1) — by reading pre-encoded files instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/q191201771/naza/pkg/nazalog"

	"github.com/bobotouo/bb-rtmp/pkg/service"
)

func main() {
	videoFile, audioFile, url, width, height, fps, logfile := parseFlag()

	if logfile != "" {
		if err := log.Init(func(option *log.Option) {
			option.IsRotateDaily = false
			option.Filename = logfile
			option.IsToStdout = false
		}); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "init nazalog failed. err=%+v\n", err)
			os.Exit(1)
		}
	}

	svc := service.New()

	h, err := svc.Open(context.Background(), url)
	if err != nil {
		log.Errorf("open failed. url=%s err=%v", url, err)
		os.Exit(1)
	}
	log.Infof("open succ. handle=%d url=%s", h, url)

	if err := svc.SetMetadata(h, width, height, 2_000_000, fps, 44100, 2); err != nil {
		log.Errorf("set_metadata failed. err=%v", err)
		os.Exit(1)
	}

	frameIntervalMs := int64(1000 / fps)
	var tsMs int64

	if videoFile != "" {
		for _, nal := range readAnnexbFrames(videoFile) {
			if err := svc.SendVideo(h, nal, tsMs, isKeyframe(nal)); err != nil {
				log.Errorf("send_video failed. err=%v", err)
			}
			tsMs += frameIntervalMs
			time.Sleep(time.Duration(frameIntervalMs) * time.Millisecond)
		}
	}

	if audioFile != "" {
		for _, frame := range readAdtsFrames(audioFile) {
			if err := svc.SendAudio(h, frame, tsMs); err != nil {
				log.Errorf("send_audio failed. err=%v", err)
			}
		}
	}

	stats, _ := svc.GetStats(h)
	log.Infof("done. bytes_sent=%d", stats.BytesSent)

	svc.Close(h)
}

func parseFlag() (videoFile, audioFile, url string, width, height, fps int, logfile string) {
	v := flag.String("v", "", "raw h264 annex-b file")
	a := flag.String("a", "", "raw aac (adts) file")
	o := flag.String("o", "", "rtmp push url")
	w := flag.Int("width", 1280, "video width")
	ht := flag.Int("height", 720, "video height")
	f := flag.Int("fps", 30, "video framerate")
	l := flag.String("l", "", "log file")
	flag.Parse()

	if *o == "" || (*v == "" && *a == "") {
		flag.Usage()
		_, _ = fmt.Fprintf(os.Stderr, "Example:\n  ./bb-rtmp-demo -v testdata/test.h264 -o rtmp://127.0.0.1:1935/live/test\n")
		os.Exit(1)
	}
	return *v, *a, *o, *w, *ht, *f, *l
}
