package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"pokehub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

type pokemonPageResponse struct {
	Items      []models.Pokemon `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	HasNext    bool             `json:"has_next"`
	HasPrev    bool             `json:"has_prev"`
}

func main() {
	global := flag.NewFlagSet("pokehub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "dex":
		handleDex(ctx, client, *baseURL, sub, args[2:])
	case "fav":
		handleFav(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "watch":
		handleWatch(*baseURL, sub, args[2:])
	case "export":
		handleExport(ctx, client, *baseURL, sub, args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ logged in")
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{"username": *username, "email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ registered and logged in")
	case "logout":
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	default:
		log.Fatal("usage: pokehub auth <login|register|logout>")
	}
}

func handleDex(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("dex list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 20, "page size")
		_ = fs.Parse(args)

		u := fmt.Sprintf("%s/pokemon?page=%d&limit=%d", baseURL, *page, *limit)
		var resp pokemonPageResponse
		if err := doJSON(ctx, client, http.MethodGet, u, "", nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	case "search":
		fs := flag.NewFlagSet("dex search", flag.ExitOnError)
		query := fs.String("q", "", "search query")
		_ = fs.Parse(args)
		if *query == "" {
			log.Fatal("query is required")
		}

		u := baseURL + "/pokemon/search?q=" + url.QueryEscape(*query)
		var resp pokemonPageResponse
		if err := doJSON(ctx, client, http.MethodGet, u, "", nil, &resp); err != nil {
			log.Fatalf("search failed: %v", err)
		}
		printJSON(resp)
	case "type":
		fs := flag.NewFlagSet("dex type", flag.ExitOnError)
		typeKey := fs.String("name", "", "type name, e.g. electric")
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 20, "page size")
		_ = fs.Parse(args)
		if *typeKey == "" {
			log.Fatal("type name is required")
		}

		u := fmt.Sprintf("%s/pokemon/types/%s?page=%d&limit=%d",
			baseURL, url.PathEscape(*typeKey), *page, *limit)
		var resp pokemonPageResponse
		if err := doJSON(ctx, client, http.MethodGet, u, "", nil, &resp); err != nil {
			log.Fatalf("type list failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("dex show", flag.ExitOnError)
		name := fs.String("name", "", "pokemon name or id")
		_ = fs.Parse(args)
		if *name == "" {
			log.Fatal("pokemon name is required")
		}

		var resp models.Pokemon
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/pokemon/"+url.PathEscape(*name), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: pokehub dex <list|search|type|show>")
	}
}

func handleFav(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "add":
		fs := flag.NewFlagSet("fav add", flag.ExitOnError)
		name := fs.String("name", "", "pokemon name or id")
		note := fs.String("note", "", "optional note")
		_ = fs.Parse(args)
		if *name == "" {
			log.Fatal("pokemon name is required")
		}

		var payload any
		if *note != "" {
			payload = map[string]string{"note": *note}
		}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPut, baseURL+"/users/favorites/"+url.PathEscape(*name), token, payload, &resp); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		printJSON(resp)
	case "remove":
		fs := flag.NewFlagSet("fav remove", flag.ExitOnError)
		name := fs.String("name", "", "pokemon name")
		_ = fs.Parse(args)
		if *name == "" {
			log.Fatal("pokemon name is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/users/favorites/"+url.PathEscape(*name), token, nil, &resp); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		printJSON(resp)
	case "list":
		fs := flag.NewFlagSet("fav list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u := fmt.Sprintf("%s/users/favorites?limit=%d&offset=%d", baseURL, *limit, *offset)
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u, token, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: pokehub fav <add|remove|list>")
	}
}

func handleWatch(baseURL, sub string, args []string) {
	switch sub {
	case "ws":
		wsURL, err := websocketURL(baseURL, "/ws")
		if err != nil {
			log.Fatalf("ws url: %v", err)
		}
		for {
			if err := runWebSocket(wsURL); err != nil {
				log.Printf("[watch] disconnected: %v", err)
			}
			time.Sleep(1 * time.Second)
		}
	case "tcp":
		fs := flag.NewFlagSet("watch tcp", flag.ExitOnError)
		addr := fs.String("addr", "127.0.0.1:7070", "TCP sync server address")
		_ = fs.Parse(args)
		for {
			if err := runSyncTCP(*addr); err != nil {
				log.Printf("[watch] disconnected: %v", err)
			}
			time.Sleep(1 * time.Second)
		}
	default:
		log.Fatal("usage: pokehub watch <ws|tcp>")
	}
}

func handleExport(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "output file path")
	limit := fs.Int("limit", 151, "number of entries to export")
	_ = fs.Parse(args)

	switch sub {
	case "json":
		if *out == "" {
			*out = "pokedex.json"
		}
		items, err := fetchPokemon(ctx, client, baseURL, *limit)
		if err != nil {
			log.Fatalf("export json failed: %v", err)
		}
		if err := writeJSON(*out, items); err != nil {
			log.Fatalf("write json failed: %v", err)
		}
		log.Printf("✅ exported %d entries to %s", len(items), *out)
	case "csv":
		if *out == "" {
			*out = "pokedex.csv"
		}
		items, err := fetchPokemon(ctx, client, baseURL, *limit)
		if err != nil {
			log.Fatalf("export csv failed: %v", err)
		}
		if err := writeCSV(*out, items); err != nil {
			log.Fatalf("write csv failed: %v", err)
		}
		log.Printf("✅ exported %d entries to %s", len(items), *out)
	default:
		log.Fatal("usage: pokehub export <json|csv>")
	}
}

func fetchPokemon(ctx context.Context, client *http.Client, baseURL string, limit int) ([]models.Pokemon, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	var out []models.Pokemon
	page := 1
	for len(out) < limit {
		pageSize := 50
		if remaining := limit - len(out); remaining < pageSize {
			pageSize = remaining
		}

		u := fmt.Sprintf("%s/pokemon?page=%d&limit=%d", baseURL, page, pageSize)
		var resp pokemonPageResponse
		if err := doJSON(ctx, client, http.MethodGet, u, "", nil, &resp); err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}
		out = append(out, resp.Items...)
		if !resp.HasNext {
			break
		}
		page++
	}

	return out, nil
}

func writeJSON(path string, items []models.Pokemon) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, items []models.Pokemon) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "name", "display_name", "types", "height_m", "weight_kg", "color", "description",
	}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{
			fmt.Sprintf("%d", item.ID),
			item.Name,
			item.DisplayName,
			strings.Join(item.Types, ","),
			fmt.Sprintf("%.1f", item.Height),
			fmt.Sprintf("%.1f", item.Weight),
			item.Color,
			item.Description,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func runSyncTCP(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[watch] connected to %s", addr)
	reader := bufio.NewScanner(conn)
	for reader.Scan() {
		fmt.Println(reader.Text())
	}
	if err := reader.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[watch] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.pokehub-token.json"
	}
	return filepath.Join(home, ".pokehub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("pokehub <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  dex list|search|type|show")
	fmt.Println("  fav add|remove|list")
	fmt.Println("  watch ws|tcp")
	fmt.Println("  export json|csv")
}
