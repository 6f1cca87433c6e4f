package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"podhub/internal/server"
	"podhub/internal/shared"
)

func main() {
	dbPath := flag.String("db", "", "path to the backing JSON document (default: PODHUB_DB_PATH or ./data/db.json)")
	seed := flag.Bool("seed", false, "write a starter document with freshly minted tokens instead of checking")
	flag.Parse()

	path := *dbPath
	if path == "" {
		path = os.Getenv("PODHUB_DB_PATH")
	}
	if path == "" {
		path = "./data/db.json"
	}

	if *seed {
		if err := writeSeed(path); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		fmt.Println("seed written:", path)
		return
	}

	doc, err := server.LoadDocument(path)
	if err != nil {
		log.Fatalf("load failed: %v", err)
	}

	fmt.Println("Document:", path)
	fmt.Println(" users:", len(doc.Auth.Users))
	fmt.Println(" leave applications:", len(doc.LMS.LeaveApplications))
	fmt.Println(" pods:", len(doc.Pods.Recommendations))

	if problems := validate(doc); len(problems) > 0 {
		for _, p := range problems {
			fmt.Println("PROBLEM:", p)
		}
		os.Exit(1)
	}
	fmt.Println("ok")
}

// validate checks the uniqueness invariants the server relies on: tokens
// and ids must be unique or token auth and id lookups turn ambiguous.
func validate(doc *server.Document) []string {
	var problems []string

	tokens := map[string]int64{}
	userIDs := map[int64]bool{}
	emails := map[string]bool{}
	for _, u := range doc.Auth.Users {
		if u.Token == "" {
			problems = append(problems, fmt.Sprintf("user %d has no token", u.ID))
		} else if other, dup := tokens[u.Token]; dup {
			problems = append(problems, fmt.Sprintf("users %d and %d share a token", other, u.ID))
		} else {
			tokens[u.Token] = u.ID
		}
		if userIDs[u.ID] {
			problems = append(problems, fmt.Sprintf("duplicate user id %d", u.ID))
		}
		userIDs[u.ID] = true
		if emails[u.Email] {
			// login picks the first match, so duplicates are ambiguous
			problems = append(problems, fmt.Sprintf("duplicate email %q", u.Email))
		}
		emails[u.Email] = true
	}

	leaveIDs := map[int64]bool{}
	for _, l := range doc.LMS.LeaveApplications {
		if leaveIDs[l.ID] {
			problems = append(problems, fmt.Sprintf("duplicate leave id %d", l.ID))
		}
		leaveIDs[l.ID] = true
	}

	podIDs := map[string]bool{}
	for _, p := range doc.Pods.Recommendations {
		if podIDs[p.PodID] {
			problems = append(problems, fmt.Sprintf("duplicate pod id %q", p.PodID))
		}
		podIDs[p.PodID] = true
	}

	return problems
}

func writeSeed(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}

	managerToken, err := shared.NewToken()
	if err != nil {
		return err
	}
	employeeToken, err := shared.NewToken()
	if err != nil {
		return err
	}

	doc := &server.Document{
		Auth: server.AuthNamespace{Users: []server.User{
			{ID: 1, Name: "Asha Nair", Email: "asha@example.com", Password: "changeme", Role: "manager", Token: managerToken},
			{ID: 2, Name: "Ben Okafor", Email: "ben@example.com", Password: "changeme", Role: "employee", Token: employeeToken},
		}},
		LMS: server.LMSNamespace{LeaveApplications: []server.LeaveApplication{
			{ID: 1, UserID: 2, StartDate: "2026-09-01", EndDate: "2026-09-05", Reason: "vacation", Status: "pending"},
		}},
		Pods: server.PodsNamespace{
			Details: json.RawMessage(`[{"podId":"pod-alpha","name":"Alpha","capacity":6}]`),
			Recommendations: []server.Pod{
				{PodID: "pod-alpha", Name: "Alpha", Members: []server.Member{
					{ID: 2, Name: "Ben Okafor", Role: "Member"},
				}},
			},
		},
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}
