package system

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Account is one row of the system user database.
type Account struct {
	Name  string
	UID   int
	Home  string
	Shell string
}

// Group is one row of the system group database.
type Group struct {
	Name string
	GID  int
}

// systemUIDThreshold separates daemon accounts from human ones.
const systemUIDThreshold = 1000

// Users lists system accounts. Accounts below the system UID threshold are
// excluded unless includeSystem is set; the superuser is always included.
func (e *Enumerator) Users(includeSystem bool) ([]Account, error) {
	all, err := e.users.GetOrCompute(e.passwdPath, func() ([]Account, error) {
		return parsePasswd(e.passwdPath)
	})
	if err != nil {
		return nil, err
	}

	if includeSystem {
		return all, nil
	}
	var out []Account
	for _, a := range all {
		if a.UID == 0 || a.UID >= systemUIDThreshold {
			out = append(out, a)
		}
	}
	return out, nil
}

// Groups lists system groups.
func (e *Enumerator) Groups() ([]Group, error) {
	return e.groups.GetOrCompute(e.groupPath, func() ([]Group, error) {
		return parseGroups(e.groupPath)
	})
}

func parsePasswd(path string) ([]Account, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user database: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var accounts []Account
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// name:password:uid:gid:gecos:home:shell
		fields := strings.Split(line, ":")
		if len(fields) < 7 {
			continue
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		accounts = append(accounts, Account{
			Name:  fields[0],
			UID:   uid,
			Home:  fields[5],
			Shell: fields[6],
		})
	}
	return accounts, scanner.Err()
}

func parseGroups(path string) ([]Group, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read group database: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var groups []Group
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// name:password:gid:members
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		gid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		groups = append(groups, Group{Name: fields[0], GID: gid})
	}
	return groups, scanner.Err()
}
