package checks

import (
	"context"
	"fmt"

	"squeezer/core/pulp"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// PulpReport summarizes the server status endpoint.
type PulpReport struct {
	Online            bool              `json:"online"`
	Versions          map[string]string `json:"versions"`
	OnlineWorkers     int               `json:"online_workers"`
	DatabaseConnected bool              `json:"database_connected"`
	StorageFreeBytes  int64             `json:"storage_free_bytes,omitempty"`
	MissingComponents []string          `json:"missing_components"`
}

// RequiredComponents are the server plugins the modules talk to.
var RequiredComponents = []string{"core", "deb", "python"}

// CheckPulp reads the server status and reports missing plugins.
func CheckPulp(ctx context.Context, client pulp.Client) (*PulpReport, error) {
	resp, err := client.Call(ctx, "status_read", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read server status: %w", err)
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode server status: %w", err)
	}

	status := gjson.ParseBytes(data)
	report := &PulpReport{
		Online:            true,
		Versions:          map[string]string{},
		OnlineWorkers:     len(status.Get("online_workers").Array()),
		DatabaseConnected: status.Get("database_connection.connected").Bool(),
		StorageFreeBytes:  status.Get("storage.free").Int(),
		MissingComponents: []string{},
	}
	status.Get("versions").ForEach(func(_, v gjson.Result) bool {
		report.Versions[v.Get("component").String()] = v.Get("version").String()
		return true
	})
	for _, c := range RequiredComponents {
		if _, ok := report.Versions[c]; !ok {
			report.MissingComponents = append(report.MissingComponents, c)
		}
	}
	return report, nil
}
