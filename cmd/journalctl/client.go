package main

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

func newClient() *resty.Client {
	c := resty.New().SetBaseURL(apiFlag)
	if tokenFlag != "" {
		c.SetAuthToken(tokenFlag)
	}
	return c
}

func doGet(path string, query map[string]string) ([]byte, error) {
	resp, err := newClient().R().SetQueryParams(query).Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s: %s", resp.Status(), resp.String())
	}
	return resp.Body(), nil
}

func doPostJSON(path string, payload interface{}) ([]byte, error) {
	resp, err := newClient().R().SetBody(payload).Post(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s: %s", resp.Status(), resp.String())
	}
	return resp.Body(), nil
}
