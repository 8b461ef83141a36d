package utils

import (
  "errors"
  "net"
  "net/http"
  "strings"
)

type IpData struct {
  Ip   string
  Port string
}

func GetRequestIpData(r *http.Request) (IpData, error) {
  var data IpData
  ip, port, err := net.SplitHostPort(r.RemoteAddr)
  if err != nil {
    return data, err
  }
  data = IpData{
    Ip: ip,
    Port: port,
  }
  return data, nil
}

func GetForwardedForIpData(r *http.Request) (IpData, error) {
  var data IpData

  header := r.Header.Get("X-Forwarded-For")
  if header == "" {
    return data, errors.New("Missing X-Forwarded-For header")
  }

  // First entry is the originating client, the rest are proxies.
  first := strings.TrimSpace(strings.Split(header, ",")[0])

  ip, port, err := net.SplitHostPort(first)
  if err != nil {
    // Header entries usually carry no port.
    return IpData{Ip: first}, nil
  }

  data = IpData{
    Ip: ip,
    Port: port,
  }
  return data, nil
}
