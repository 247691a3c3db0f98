package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// googleAdsFile espelha o google-ads.yaml usado pelas bibliotecas oficiais do Google Ads
type googleAdsFile struct {
	DeveloperToken  string `yaml:"developer_token"`
	LoginCustomerID string `yaml:"login_customer_id"`
	CustomerID      string `yaml:"customer_id"`
	ClientID        string `yaml:"client_id"`
	ClientSecret    string `yaml:"client_secret"`
	RefreshToken    string `yaml:"refresh_token"`
	UseProtoPlus    bool   `yaml:"use_proto_plus"`
}

// loadGoogleAdsFile lê o arquivo se ele existir; arquivo ausente não é erro
func loadGoogleAdsFile(path string) (*googleAdsFile, error) {
	if path == "" {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file := &googleAdsFile{}
	if err := yaml.Unmarshal(content, file); err != nil {
		return nil, err
	}

	return file, nil
}

func (g *GoogleAds) merge(file *googleAdsFile) {
	if file == nil {
		return
	}

	setIfEmpty(&g.DeveloperToken, file.DeveloperToken)
	setIfEmpty(&g.LoginCustomerID, file.LoginCustomerID)
	setIfEmpty(&g.CustomerID, file.CustomerID)
	setIfEmpty(&g.ClientID, file.ClientID)
	setIfEmpty(&g.ClientSecret, file.ClientSecret)
	setIfEmpty(&g.RefreshToken, file.RefreshToken)
}

func setIfEmpty(target *string, value string) {
	if *target == "" {
		*target = value
	}
}
