// Terminal chat client: joins a room, prints the transcript and sends
// whatever is typed on stdin. "@" commands work the same way as in the
// web page.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Maxencd/maxence/internal/render"
	"github.com/Maxencd/maxence/internal/session"
	"github.com/Maxencd/maxence/internal/transport"
)

func main() {
	serverFlag := flag.String("server", "http://localhost:8080", "chat server base URL")
	nickFlag := flag.String("nickname", "", "nickname to join with")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	nickname := strings.TrimSpace(*nickFlag)
	if nickname == "" {
		fmt.Fprintln(os.Stderr, "Usage: client -nickname <name> [-server <url>]")
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}

	if servers, err := fetchServers(httpClient, *serverFlag); err != nil {
		logger.Warn().Err(err).Msg("获取服务器列表失败，使用指定服务器")
	} else {
		logger.Info().Strs("servers", servers).Msg("可用服务器")
	}

	if err := validateNickname(httpClient, *serverFlag, nickname); err != nil {
		logger.Fatal().Err(err).Msg("昵称验证失败")
	}

	ws, err := transport.Dial(*serverFlag, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("连接服务器失败")
	}

	renderer := render.NewRenderer(nickname)
	renderer.Transcript().OnAppend = printNode

	presence := render.NewPresence(nickname)
	presence.OnUpdate = printPresence

	done := make(chan struct{})
	ctrl := session.New(session.Config{
		Nickname:  nickname,
		Transport: ws,
		Renderer:  renderer,
		Presence:  presence,
		Logger:    logger,
		Navigator: session.NavigatorFunc(func(path string) {
			// Back to login means the session is over.
			select {
			case <-done:
			default:
				close(done)
			}
		}),
	})

	go func() {
		ws.Run(ctrl)
		select {
		case <-done:
		default:
			close(done)
		}
	}()

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "/quit" {
				ctrl.Logout()
				return
			}
			ctrl.Send(line)
		}
		ctrl.Logout()
	}()

	<-done
}

func fetchServers(client *http.Client, base string) ([]string, error) {
	resp, err := client.Get(base + "/api/servers")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var servers []string
	if err := json.NewDecoder(resp.Body).Decode(&servers); err != nil {
		return nil, err
	}
	return servers, nil
}

func validateNickname(client *http.Client, base, nickname string) error {
	body, _ := json.Marshal(map[string]string{"nickname": nickname})
	resp, err := client.Post(base+"/api/validate_nickname", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%s", result.Message)
	}
	return nil
}

func printNode(n *render.Node) {
	var b strings.Builder
	b.WriteString("[" + n.Timestamp + "]")
	switch {
	case n.Style == render.StyleSystem && n.Error:
		b.WriteString(" !! ")
	case n.Style == render.StyleSystem:
		b.WriteString(" ** ")
	case n.Sender != "":
		b.WriteString(" " + n.Sender + ": ")
	default:
		b.WriteString(" ")
	}
	b.WriteString(strings.Join(n.Lines, "\n    "))
	if n.Frame != nil {
		fmt.Fprintf(&b, "\n    [%dx%d 预览] %s", n.Frame.Width, n.Frame.Height, n.Frame.URL)
	}
	fmt.Println(b.String())
}

func printPresence(entries []render.Entry) {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Self {
			names = append(names, e.Nickname+"*")
		} else {
			names = append(names, e.Nickname)
		}
	}
	fmt.Printf("在线用户 (%d): %s\n", len(entries), strings.Join(names, ", "))
}
