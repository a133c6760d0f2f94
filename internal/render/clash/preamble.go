package clash

// Preamble holds the engine level settings every generated document starts
// with. It is emitted byte for byte.
const Preamble = `redir-port: 9797
tproxy-port: 9898
mode: global
allow-lan: true
bind-address: '*'
log-level: silent
unified-delay: true
geodata-mode: true
geodata-loader: memconservative
ipv6: false
external-controller: 0.0.0.0:9090
secret: ''
external-ui: /data/adb/box/clash/dashboard
global-client-fingerprint: chrome
find-process-mode: strict
keep-alive-interval: 15
geo-auto-update: false
geo-update-interval: 24
tcp-concurrent: true
tun:
  exclude-package: [
    ]
  enable: false
  mtu: 9000
  device: clash
  stack: mixed
  dns-hijack:
  - any:53
  - tcp://any:53
  auto-route: true
  strict-route: false
  auto-redirect: true
  auto-detect-interface: true
profile:
  store-selected: true
  store-fake-ip: false
dns:
  cache-algorithm: arc
  enable: true
  prefer-h3: false
  ipv6: false
  default-nameserver:
  - 8.8.8.8
  - 1.1.1.1
  listen: 0.0.0.0:1053
  use-hosts: true
  enhanced-mode: redir-host
  fake-ip-range: 198.18.0.1/16
  fake-ip-filter:
  - '*.lan'
  - '*.ntp.*'
  nameserver:
  - 1.1.1.1
  - 8.8.8.8
  proxy-server-nameserver:
  - 112.215.203.246
`
